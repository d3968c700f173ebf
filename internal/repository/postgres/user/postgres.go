package user

import (
	"context"
	"errors"

	userdomain "finance-tracker-go/internal/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*userdomain.User, error) {
	var found userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var found userdomain.User
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &found, nil
}

// CreateUser maps a race on the unique email index to ErrEmailTaken.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return userdomain.ErrEmailTaken
	}
	return err
}
