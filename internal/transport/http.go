package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openshelf/showcase/internal/domain/project"
)

// ProjectService is the domain surface the HTTP layer exposes.
type ProjectService interface {
	List(ctx context.Context, req project.ListRequest) (*project.Page, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	UpdateScore(ctx context.Context, id string, score float64) error
	Categories(ctx context.Context) (*project.CategoryTree, error)
	Analysis(ctx context.Context) (*project.Analysis, error)
}

// Server wires HTTP handlers.
type Server struct {
	svc ProjectService
}

// NewServer creates the HTTP router with middleware, API routes and the
// static front-end mount.
func NewServer(svc ProjectService, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	srv := &Server{svc: svc}

	r.Get("/api/categories", srv.handleCategories)
	r.Get("/api/projects", srv.handleListProjects)
	r.Get("/api/projects/{id}", srv.handleProjectDetail)
	r.Put("/api/projects/{id}/score", srv.handleUpdateScore)
	r.Get("/api/analysis", srv.handleAnalysis)
	r.Get("/health", srv.handleHealth)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/static/index.html", http.StatusFound)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	tree, err := s.svc.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := project.ListRequest{
		Page:       intParam(q.Get("page"), 1),
		Limit:      intParam(q.Get("limit"), project.DefaultPageSize),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
		CategoryL1: q.Get("category_l1"),
		CategoryL2: q.Get("category_l2"),
		Search:     q.Get("search"),
		Visibility: q.Get("project_visibility"),
	}

	page, err := s.svc.List(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

type updateScoreRequest struct {
	NewScore *float64 `json:"new_score"`
}

type updateScoreResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	NewScore float64 `json:"new_score"`
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewScore == nil {
		writeError(w, http.StatusBadRequest, "request body must contain new_score")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.svc.UpdateScore(r.Context(), id, *req.NewScore); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateScoreResponse{
		Status:   "success",
		Message:  "score updated",
		NewScore: *req.NewScore,
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Analysis(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// writeDomainError maps domain errors onto the HTTP status taxonomy:
// missing record 404, rejected score 400, anything else a store-level 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrScoreOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
