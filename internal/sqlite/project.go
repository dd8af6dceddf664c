package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openshelf/showcase/internal/domain/project"
	"github.com/openshelf/showcase/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// buildFilter renders the WHERE clause shared by the page and count queries.
// Filters combine with AND; the two-field search is the only inner OR. Every
// value is a bound parameter, never statement text.
func buildFilter(opts project.ListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.CategoryL1 != "" {
		conds = append(conds, "category_l1 = ?")
		args = append(args, opts.CategoryL1)
	}
	if opts.CategoryL2 != "" {
		conds = append(conds, "category_l2 = ?")
		args = append(args, opts.CategoryL2)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		conds = append(conds, "(description LIKE ? OR manual_summary LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if opts.Visibility != "" {
		conds = append(conds, "project_visibility = ?")
		args = append(args, string(opts.Visibility))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of projects plus the total count under the identical
// predicate. Ties between equal sort keys follow SQLite's natural order and
// are not guaranteed stable across calls.
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, int, error) {
	where, filterArgs := buildFilter(opts)

	// Sort column and direction are enum-resolved fixed literals; they are
	// the only fragments composed into statement text.
	query := `
		SELECT project_id, manual_title, manual_summary, author_id, main_domain,
		       strftime('%Y-%m-%d %H:%M', create_tm) AS create_tm,
		       project_forked_acc_cnt, project_opened_acc_cnt, author_name,
		       category_l1, category_l2, manual_score, manual_score_updated,
		       screenshot_url, description, project_visibility
		FROM projects` + where +
		fmt.Sprintf(" ORDER BY %s %s", opts.SortBy.Column(), opts.SortOrder.Keyword()) +
		" LIMIT ? OFFSET ?"

	pageArgs := make([]any, 0, len(filterArgs)+2)
	pageArgs = append(pageArgs, filterArgs...)
	pageArgs = append(pageArgs, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var proj project.Project
		err := rows.Scan(
			&proj.ProjectID,
			&proj.ManualTitle,
			&proj.ManualSummary,
			&proj.AuthorID,
			&proj.MainDomain,
			&proj.CreateTime,
			&proj.ForkedCount,
			&proj.OpenedCount,
			&proj.AuthorName,
			&proj.CategoryL1,
			&proj.CategoryL2,
			&proj.ManualScore,
			&proj.ManualScoreUpdated,
			&proj.ScreenshotURL,
			&proj.Description,
			&proj.Visibility,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating project rows: %w", err)
	}

	// Same clause, same bound values, so total matches the page predicate.
	var total int
	countQuery := "SELECT COUNT(*) FROM projects" + where
	if err := r.db.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return projects, total, nil
}

// Get retrieves the full record for one project, unprojected.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT project_id, manual_title, manual_summary, author_id, main_domain,
		       create_tm, project_forked_acc_cnt, project_opened_acc_cnt,
		       author_name, category_l1, category_l2, manual_score,
		       manual_score_updated, screenshot_url, description, project_visibility
		FROM projects
		WHERE project_id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ProjectID,
		&proj.ManualTitle,
		&proj.ManualSummary,
		&proj.AuthorID,
		&proj.MainDomain,
		&proj.CreateTime,
		&proj.ForkedCount,
		&proj.OpenedCount,
		&proj.AuthorName,
		&proj.CategoryL1,
		&proj.CategoryL2,
		&proj.ManualScore,
		&proj.ManualScoreUpdated,
		&proj.ScreenshotURL,
		&proj.Description,
		&proj.Visibility,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// UpdateScore sets manual_score_updated for one project inside an explicit
// transaction. A matching row commits; a store error rolls back. When no row
// matches, the no-op write still commits before ErrNotFound is returned.
func (r *ProjectRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET manual_score_updated = ? WHERE project_id = ?`,
		score, id)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Categories returns distinct non-empty l1 values and, per l1, distinct
// non-empty l2 values. Every l1 appears as a key in L2Map.
func (r *ProjectRepository) Categories(ctx context.Context) (*project.CategoryTree, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category_l1
		FROM projects
		WHERE category_l1 IS NOT NULL AND category_l1 != ''
		ORDER BY category_l1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list l1 categories: %w", err)
	}
	defer rows.Close()

	tree := &project.CategoryTree{
		L1:    []string{},
		L2Map: map[string][]string{},
	}
	for rows.Next() {
		var l1 string
		if err := rows.Scan(&l1); err != nil {
			return nil, fmt.Errorf("failed to scan l1 category: %w", err)
		}
		tree.L1 = append(tree.L1, l1)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating l1 rows: %w", err)
	}

	for _, l1 := range tree.L1 {
		l2s, err := r.subcategories(ctx, l1)
		if err != nil {
			return nil, err
		}
		tree.L2Map[l1] = l2s
	}

	return tree, nil
}

func (r *ProjectRepository) subcategories(ctx context.Context, l1 string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category_l2
		FROM projects
		WHERE category_l1 = ?
		  AND category_l2 IS NOT NULL
		  AND category_l2 != ''
		ORDER BY category_l2
	`, l1)
	if err != nil {
		return nil, fmt.Errorf("failed to list l2 categories: %w", err)
	}
	defer rows.Close()

	l2s := []string{}
	for rows.Next() {
		var l2 string
		if err := rows.Scan(&l2); err != nil {
			return nil, fmt.Errorf("failed to scan l2 category: %w", err)
		}
		l2s = append(l2s, l2)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating l2 rows: %w", err)
	}

	return l2s, nil
}

// Analysis returns distinct project and author counts grouped by l1, and
// again grouped by (l1, l2).
func (r *ProjectRepository) Analysis(ctx context.Context) (*project.Analysis, error) {
	stats := &project.Analysis{
		L1Analysis: []project.CategoryStat{},
		L2Map:      map[string][]project.SubcategoryStat{},
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category_l1,
		       COUNT(DISTINCT project_id) AS project_count,
		       COUNT(DISTINCT author_id) AS author_count
		FROM projects
		WHERE category_l1 IS NOT NULL AND category_l1 != ''
		GROUP BY category_l1
		ORDER BY project_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze l1 categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stat project.CategoryStat
		if err := rows.Scan(&stat.CategoryL1, &stat.ProjectCount, &stat.AuthorCount); err != nil {
			return nil, fmt.Errorf("failed to scan l1 stat: %w", err)
		}
		stats.L1Analysis = append(stats.L1Analysis, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating l1 stat rows: %w", err)
	}

	l2Rows, err := r.db.QueryContext(ctx, `
		SELECT category_l1, category_l2,
		       COUNT(DISTINCT project_id) AS project_count,
		       COUNT(DISTINCT author_id) AS author_count
		FROM projects
		WHERE category_l1 IS NOT NULL AND category_l1 != ''
		  AND category_l2 IS NOT NULL AND category_l2 != ''
		GROUP BY category_l1, category_l2
		ORDER BY category_l1, project_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze l2 categories: %w", err)
	}
	defer l2Rows.Close()

	for l2Rows.Next() {
		var l1 string
		var stat project.SubcategoryStat
		if err := l2Rows.Scan(&l1, &stat.CategoryL2, &stat.ProjectCount, &stat.AuthorCount); err != nil {
			return nil, fmt.Errorf("failed to scan l2 stat: %w", err)
		}
		stats.L2Map[l1] = append(stats.L2Map[l1], stat)
	}
	if err = l2Rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating l2 stat rows: %w", err)
	}

	return stats, nil
}
