package storage

import (
	"time"

	"github.com/validly/saas-validator/internal/models"
)

// Store defines the contract for project and analysis persistence.
type Store interface {
	CreateProject(project *models.Project) error
	GetProject(id uint) (*models.Project, error)
	ListProjects() ([]models.Project, error)
	DeleteProject(id uint) error
	UpdateProjectStatus(id uint, status models.AnalysisStatus) error

	// PendingProjects returns projects still pending after the given age,
	// for the scheduler sweep.
	PendingProjects(olderThan time.Duration) ([]models.Project, error)

	// SaveAnalysis upserts the analysis row for its project; a rerun
	// replaces the previous run's fields.
	SaveAnalysis(analysis *models.Analysis) error
	GetAnalysis(projectID uint) (*models.Analysis, error)
}
