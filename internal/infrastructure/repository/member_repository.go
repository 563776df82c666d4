package repository

import (
	"context"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

func NewMemberRepository(db *gorm.DB, tables models.Tables) *MemberRepository {
	return &MemberRepository{db: db, table: tables.CohortMembers, now: time.Now}
}

func (r *MemberRepository) ListGroupMembers(ctx context.Context, groupID int64) (domain.Members, error) {
	var rows []models.CohortMember

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("cohortid = ?", groupID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cohort members: %w", err)
	}

	members := make(domain.Members, len(rows))
	for _, row := range rows {
		members[row.UserID] = domain.Member{
			ID:        row.ID,
			GroupID:   row.CohortID,
			UserID:    row.UserID,
			TimeAdded: time.Unix(row.TimeAdded, 0).UTC(),
		}
	}

	return members, nil
}

// AddMember is a no-op when the membership already exists.
func (r *MemberRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	row := models.CohortMember{
		CohortID:  groupID,
		UserID:    userID,
		TimeAdded: r.now().Unix(),
	}

	err := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cohortid"}, {Name: "userid"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("add cohort member: %w", err)
	}

	return nil
}

// RemoveMember succeeds when the membership is already gone.
func (r *MemberRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("cohortid = ? AND userid = ?", groupID, userID).
		Delete(&models.CohortMember{}).Error
	if err != nil {
		return fmt.Errorf("remove cohort member: %w", err)
	}

	return nil
}
