package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore persists projects and analyses in Postgres.
type PostgresStore struct {
	db *gorm.DB
}

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres and migrates the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Project{}, &models.Analysis{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logrus.Info("Connected to Postgres")
	return &PostgresStore{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm handle, used by tests.
func NewStoreWithDB(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateProject(project *models.Project) error {
	return s.db.Create(project).Error
}

func (s *PostgresStore) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Analysis").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (s *PostgresStore) DeleteProject(id uint) error {
	if err := s.db.Where("project_id = ?", id).Delete(&models.Analysis{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Project{}, id).Error
}

func (s *PostgresStore) UpdateProjectStatus(id uint, status models.AnalysisStatus) error {
	return s.db.Model(&models.Project{}).Where("id = ?", id).
		Update("status", status).Error
}

func (s *PostgresStore) PendingProjects(olderThan time.Duration) ([]models.Project, error) {
	var projects []models.Project
	cutoff := time.Now().Add(-olderThan)
	err := s.db.Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Find(&projects).Error
	return projects, err
}

func (s *PostgresStore) SaveAnalysis(analysis *models.Analysis) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		UpdateAll: true,
	}).Create(analysis).Error
}

func (s *PostgresStore) GetAnalysis(projectID uint) (*models.Analysis, error) {
	var analysis models.Analysis
	err := s.db.Where("project_id = ?", projectID).First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
