package models

import (
	"time"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type SyncRun struct {
	ID             string          `gorm:"type:uuid;primaryKey"`
	Status         string          `gorm:"type:text;not null"`
	ExitCode       int             `gorm:"not null;default:0"`
	ProcessedCount int64           `gorm:"not null;default:0"`
	SkippedCount   int64           `gorm:"not null;default:0"`
	AddedCount     int64           `gorm:"not null;default:0"`
	RemovedCount   int64           `gorm:"not null;default:0"`
	FailedCount    int64           `gorm:"not null;default:0"`
	Stat           domain.SyncStat `gorm:"type:text;serializer:json"`
	ErrorMessage   *string         `gorm:"type:text"`
	StartedAt      time.Time
	FinishedAt     *time.Time
}
