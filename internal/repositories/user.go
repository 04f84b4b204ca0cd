package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindAllExcept lists users whose email is not in excluded.
	FindAllExcept(ctx context.Context, excluded []string) ([]models.User, error)
	FindByIDsExcept(ctx context.Context, ids []uint, excluded []string) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindAllExcept(ctx context.Context, excluded []string) ([]models.User, error) {
	var users []models.User
	query := r.db.WithContext(ctx).Order("id ASC")
	if len(excluded) > 0 {
		query = query.Where("email NOT IN ?", excluded)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) FindByIDsExcept(ctx context.Context, ids []uint, excluded []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	query := r.db.WithContext(ctx).Where("id IN ?", ids)
	if len(excluded) > 0 {
		query = query.Where("email NOT IN ?", excluded)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}
