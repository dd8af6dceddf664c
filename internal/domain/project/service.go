package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openshelf/showcase/internal/repository"
)

const (
	// DefaultPageSize is the listing page size when none is requested.
	DefaultPageSize = 8
	// MaxPageSize caps how many records one page may return.
	MaxPageSize = 100
	// MaxScore bounds the manual score range [0, MaxScore].
	MaxScore = 1000
)

// Service handles project read and score-update operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ListRequest carries the raw listing parameters. All fields are optional;
// invalid values are defaulted or clamped, never rejected.
type ListRequest struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	CategoryL1 string
	CategoryL2 string
	Search     string
	Visibility string
}

// List returns one page of projects plus the total count under the same
// filter predicate. A page past the end of the result set yields an empty
// list with an accurate total.
func (s *Service) List(ctx context.Context, req ListRequest) (*Page, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	opts := ListOptions{
		CategoryL1: req.CategoryL1,
		CategoryL2: req.CategoryL2,
		Search:     req.Search,
		Visibility: ParseVisibility(req.Visibility),
		SortBy:     ParseSortField(req.SortBy),
		SortOrder:  ParseSortOrder(req.SortOrder),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	projects, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if projects == nil {
		projects = []Project{}
	}

	return &Page{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
		Projects:   projects,
	}, nil
}

// Get fetches the full record for one identifier.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// UpdateScore sets manual_score_updated for one project. The range check
// runs before the store is touched, so a rejected score leaves the stored
// value untouched.
func (s *Service) UpdateScore(ctx context.Context, id string, score float64) error {
	if score < 0 || score > MaxScore {
		return ErrScoreOutOfRange
	}

	if err := s.repo.UpdateScore(ctx, id, score); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("updating score: %w", err)
	}

	s.logger.Info("project score updated", "project_id", id, "new_score", score)
	return nil
}

// Categories returns the observed two-level category hierarchy.
func (s *Service) Categories(ctx context.Context) (*CategoryTree, error) {
	tree, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return tree, nil
}

// Analysis returns per-category project and author counts.
func (s *Service) Analysis(ctx context.Context) (*Analysis, error) {
	stats, err := s.repo.Analysis(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzing projects: %w", err)
	}
	return stats, nil
}
