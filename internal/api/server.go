package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/models"
	"github.com/validly/saas-validator/internal/storage"
	"github.com/validly/saas-validator/internal/validation"
)

// Server exposes project CRUD and validation triggers over HTTP.
type Server struct {
	store             storage.Store
	validationService *validation.Service
}

// NewServer creates a new API server
func NewServer(store storage.Store, validationService *validation.Service) *Server {
	return &Server{
		store:             store,
		validationService: validationService,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.healthHandler).Methods("GET")
	router.HandleFunc("/metrics", s.metricsHandler).Methods("GET")

	router.HandleFunc("/projects", s.createProjectHandler).Methods("POST")
	router.HandleFunc("/projects", s.listProjectsHandler).Methods("GET")
	router.HandleFunc("/projects/{id:[0-9]+}", s.getProjectHandler).Methods("GET")
	router.HandleFunc("/projects/{id:[0-9]+}", s.deleteProjectHandler).Methods("DELETE")
	router.HandleFunc("/projects/{id:[0-9]+}/validate", s.validateProjectHandler).Methods("POST")

	return router
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Email       string   `json:"email"`
	Keywords    []string `json:"keywords"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.validationService.GetMetrics()))
}

func (s *Server) createProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	keywords, err := json.Marshal(req.Keywords)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid keywords")
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Keywords:    keywords,
		Status:      models.StatusPending,
	}

	if err := s.store.CreateProject(project); err != nil {
		logrus.Errorf("Failed to create project: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) listProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects()
	if err != nil {
		logrus.Errorf("Failed to list projects: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteProject(project.ID); err != nil {
		logrus.Errorf("Failed to delete project %d: %v", project.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateProjectHandler kicks off a validation run in the background and
// returns immediately. Poll GET /projects/{id} for the outcome.
func (s *Server) validateProjectHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}

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

	req := validation.Request{
		ProjectID:   project.ID,
		Idea:        idea,
		Keywords:    keywords,
		NotifyEmail: project.Email,
	}

	go func() {
		if _, err := s.validationService.Validate(context.Background(), req); err != nil {
			logrus.Errorf("Validation of project %d failed: %v", project.ID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "Validation started",
		"status":  string(models.StatusProcessing),
	})
}

func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return nil, false
	}

	project, err := s.store.GetProject(uint(id))
	if err != nil {
		logrus.Errorf("Failed to load project %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return nil, false
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return nil, false
	}

	return project, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
