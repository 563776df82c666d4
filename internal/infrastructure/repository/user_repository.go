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

// localMnetHost is the id Moodle gives to the local site.
const localMnetHost = 1

type UserRepository struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

func NewUserRepository(db *gorm.DB, tables models.Tables) *UserRepository {
	return &UserRepository{db: db, table: tables.User, now: time.Now}
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	var row models.LMSUser

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("username = ? AND deleted = 0", username).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("find user by username: %w", err)
	}

	return toDomainUser(row), true, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	now := r.now().Unix()
	row := models.LMSUser{
		Auth:         user.Auth,
		Confirmed:    1,
		MnetHostID:   localMnetHost,
		Username:     user.Username,
		Password:     user.Password,
		IDNumber:     user.ExternalID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Country:      user.Country,
		TimeCreated:  now,
		TimeModified: now,
	}

	if err := r.db.WithContext(ctx).Table(r.table).Create(&row).Error; err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return toDomainUser(row), nil
}

func toDomainUser(row models.LMSUser) domain.User {
	return domain.User{
		ID:         row.ID,
		Username:   row.Username,
		Auth:       row.Auth,
		ExternalID: row.IDNumber,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Country:    row.Country,
		Password:   row.Password,
	}
}
