package repository

import (
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// Destination is the cohort store backed by the LMS database.
type Destination struct {
	*GroupRepository
	*UserRepository
	*MemberRepository
}

func NewDestination(db *gorm.DB, tables models.Tables) *Destination {
	return &Destination{
		GroupRepository:  NewGroupRepository(db, tables),
		UserRepository:   NewUserRepository(db, tables),
		MemberRepository: NewMemberRepository(db, tables),
	}
}
