package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Project, int, error)
	Get(ctx context.Context, id string) (*Project, error)
	UpdateScore(ctx context.Context, id string, score float64) error
	Categories(ctx context.Context) (*CategoryTree, error)
	Analysis(ctx context.Context) (*Analysis, error)
}
