package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/config"
	"github.com/validly/saas-validator/internal/models"
	"github.com/validly/saas-validator/internal/storage"
	"github.com/validly/saas-validator/internal/validation"
)

// staleAfter is how long a project may sit in pending before the sweep
// picks it up. Projects validated through the API never age this far.
const staleAfter = 10 * time.Minute

// Service periodically sweeps for pending projects that never got
// validated and re-runs them.
type Service struct {
	config            *config.Config
	store             storage.Store
	validationService *validation.Service
	cron              *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, store storage.Store, validationService *validation.Service) *Service {
	return &Service{
		config:            cfg,
		store:             store,
		validationService: validationService,
		cron:              cron.New(cron.WithSeconds()),
	}
}

// Start begins the periodic pending-project sweep
func (s *Service) Start() error {
	schedule := s.config.SweepSchedule
	if schedule == "" {
		// Every 10 minutes
		schedule = "0 */10 * * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunSweep(); err != nil {
			logrus.Errorf("Scheduled validation sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with sweep schedule %q", schedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}

// RunSweep validates every pending project older than the stale window.
// One failing project does not stop the sweep.
func (s *Service) RunSweep() error {
	projects, err := s.store.PendingProjects(staleAfter)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return nil
	}

	logrus.Infof("Sweep found %d stale pending projects", len(projects))

	for _, project := range projects {
		req := requestForProject(project)
		if _, err := s.validationService.Validate(context.Background(), req); err != nil {
			logrus.Errorf("Sweep validation of project %d failed: %v", project.ID, err)
		}
	}

	return nil
}

func requestForProject(project models.Project) validation.Request {
	idea := project.Description
	if idea == "" {
		idea = project.Name
	}

	var keywords []string
	if len(project.Keywords) > 0 {
		if err := json.Unmarshal(project.Keywords, &keywords); err != nil {
			logrus.Warnf("Project %d has malformed keywords, deriving from idea: %v", project.ID, err)
			keywords = nil
		}
	}

	return validation.Request{
		ProjectID:   project.ID,
		Idea:        idea,
		Keywords:    keywords,
		NotifyEmail: project.Email,
	}
}
