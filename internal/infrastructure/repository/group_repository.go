package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

func NewGroupRepository(db *gorm.DB, tables models.Tables) *GroupRepository {
	return &GroupRepository{db: db, table: tables.Cohort, now: time.Now}
}

func (r *GroupRepository) FindGroupByExternalID(ctx context.Context, externalID string) (domain.Group, bool, error) {
	var row models.Cohort

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("idnumber = ?", externalID).
		Order("id").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Group{}, false, nil
		}
		return domain.Group{}, false, fmt.Errorf("find cohort by idnumber: %w", err)
	}

	return toDomainGroup(row), true, nil
}

func (r *GroupRepository) CreateGroup(ctx context.Context, group domain.Group) (domain.Group, error) {
	now := r.now().Unix()
	row := models.Cohort{
		ContextID:         group.ContextID,
		Name:              group.Name,
		IDNumber:          group.ExternalID,
		Description:       group.Description,
		DescriptionFormat: group.DescriptionFormat,
		Visible:           1,
		Component:         group.Component,
		TimeCreated:       now,
		TimeModified:      now,
	}

	if err := r.db.WithContext(ctx).Table(r.table).Create(&row).Error; err != nil {
		return domain.Group{}, fmt.Errorf("create cohort: %w", err)
	}

	return toDomainGroup(row), nil
}

func (r *GroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	result := r.db.WithContext(ctx).
		Table(r.table).
		Where("id = ?", group.ID).
		Updates(map[string]any{
			"name":              group.Name,
			"description":       group.Description,
			"descriptionformat": group.DescriptionFormat,
			"component":         group.Component,
			"timemodified":      r.now().Unix(),
		})
	if result.Error != nil {
		return fmt.Errorf("update cohort: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGroupNotFound
	}

	return nil
}

func toDomainGroup(row models.Cohort) domain.Group {
	return domain.Group{
		ID:                row.ID,
		ContextID:         row.ContextID,
		ExternalID:        row.IDNumber,
		Name:              row.Name,
		Description:       row.Description,
		DescriptionFormat: row.DescriptionFormat,
		Component:         row.Component,
	}
}
