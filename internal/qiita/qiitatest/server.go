// Package qiitatest provides an in-process fake of the job-control server
// for tests. It serves the handful of endpoints the plugin client uses and
// records every progress update and completion it receives.
package qiitatest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/me/qpshotgun/pkg/model"
)

// Server is a fake job-control server. Fixtures are registered with the
// Add* methods; recorded traffic is read back with Steps and Completion.
// All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	artifacts   map[string]model.ArtifactInfo
	preps       map[string]model.PrepInfo
	jobs        map[string]model.JobInfo
	steps       map[string][]string
	completions map[string]model.JobResult
}

// New starts a fake server. Callers must Close it when done.
func New() *Server {
	s := &Server{
		artifacts:   make(map[string]model.ArtifactInfo),
		preps:       make(map[string]model.PrepInfo),
		jobs:        make(map[string]model.JobInfo),
		steps:       make(map[string][]string),
		completions: make(map[string]model.JobResult),
	}

	r := chi.NewRouter()
	r.Get("/qiita_db/artifacts/{id}/", s.handleArtifact)
	r.Get("/qiita_db/prep_template/{id}/", s.handlePrepTemplate)
	r.Get("/qiita_db/jobs/{id}", s.handleJob)
	r.Post("/qiita_db/jobs/{id}/step/", s.handleJobStep)
	r.Post("/qiita_db/jobs/{id}/complete/", s.handleJobComplete)

	s.Server = httptest.NewServer(r)
	return s
}

// AddArtifact registers an artifact fixture.
func (s *Server) AddArtifact(id string, info model.ArtifactInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[id] = info
}

// AddPrepTemplate registers a prep template fixture.
func (s *Server) AddPrepTemplate(id string, info model.PrepInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preps[id] = info
}

// AddJob registers a job fixture.
func (s *Server) AddJob(id string, info model.JobInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = info
}

// Steps returns the progress messages recorded for a job, in order.
func (s *Server) Steps(jobID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.steps[jobID]...)
}

// Completion returns the recorded terminal result for a job, if any.
func (s *Server) Completion(jobID string) (model.JobResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.completions[jobID]
	return res, ok
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, ok := s.artifacts[chi.URLParam(r, "id")]
	s.mu.Unlock()
	respond(w, r, info, ok)
}

func (s *Server) handlePrepTemplate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, ok := s.preps[chi.URLParam(r, "id")]
	s.mu.Unlock()
	respond(w, r, info, ok)
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, ok := s.jobs[chi.URLParam(r, "id")]
	s.mu.Unlock()
	respond(w, r, info, ok)
}

func (s *Server) handleJobStep(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Step string `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	s.steps[id] = append(s.steps[id], body.Step)
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleJobComplete(w http.ResponseWriter, r *http.Request) {
	var result model.JobResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.completions[chi.URLParam(r, "id")] = result
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func respond(w http.ResponseWriter, r *http.Request, data any, ok bool) {
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
