package mocks

import (
	"context"

	"github.com/openshelf/showcase/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, int, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func (m *ProjectRepository) Categories(ctx context.Context) (*project.CategoryTree, error) {
	args := m.Called(ctx)
	if tree, ok := args.Get(0).(*project.CategoryTree); ok {
		return tree, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Analysis(ctx context.Context) (*project.Analysis, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*project.Analysis); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
