package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

type ProjectRepository interface {
	// Create stores an accepted project together with its members.
	Create(ctx context.Context, project *models.Project) error
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByTitle(ctx context.Context, title string) (*models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(project).Error; err != nil {
			return err
		}
		for i := range project.Members {
			project.Members[i].ProjectID = project.ID
		}
		if len(project.Members) == 0 {
			return nil
		}
		return tx.Create(&project.Members).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check project title: %w", err)
	}
	return count > 0, nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Preload("Members").Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) FindByTitle(ctx context.Context, title string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Members").Where("title = ?", title).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}
