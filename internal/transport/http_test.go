package transport_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/showcase/internal/domain/project"
	"github.com/openshelf/showcase/internal/sqlite"
	"github.com/openshelf/showcase/internal/transport"
)

// newTestServer wires a real in-memory store behind the HTTP router.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	seed(t, db)

	staticDir := t.TempDir()
	err = os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>showcase</html>"), 0o644)
	require.NoError(t, err)

	svc := project.NewService(sqlite.NewProjectRepository(db), nil)
	server := httptest.NewServer(transport.NewServer(svc, staticDir))
	t.Cleanup(server.Close)
	return server
}

func seed(t *testing.T, db *sqlite.DB) {
	t.Helper()

	rows := []struct {
		id, title, summary, author string
		l1, l2, desc, visibility   string
		updated                    float64
	}{
		{"p1", "Star Drift", "Space shooter", "a1", "games", "arcade", "A retro arcade shooter", "public", 90},
		{"p2", "Blockfall", "Block puzzle game", "a2", "games", "puzzle", "Relaxing puzzle", "public", 70},
		{"p3", "Taskline", "Tasks in your terminal", "a1", "tools", "cli", "Command line TODO manager", "private", 85},
	}
	for _, row := range rows {
		_, err := db.Exec(`INSERT INTO projects (
			project_id, manual_title, manual_summary, author_id,
			category_l1, category_l2, description, project_visibility,
			manual_score, manual_score_updated, create_tm
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.id, row.title, row.summary, row.author,
			row.l1, row.l2, row.desc, row.visibility,
			50.0, row.updated, "2024-01-15 10:30:00")
		require.NoError(t, err)
	}
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestListProjects_Envelope(t *testing.T) {
	server := newTestServer(t)

	var page project.Page
	resp := getJSON(t, server.URL+"/api/projects?limit=2", &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	require.Equal(t, 3, page.Total)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 2, page.Limit)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Projects, 2)
	// Default order is updated score descending.
	require.Equal(t, "p1", page.Projects[0].ProjectID)
	require.Equal(t, "p3", page.Projects[1].ProjectID)
}

func TestListProjects_SortFallback(t *testing.T) {
	server := newTestServer(t)

	var page project.Page
	resp := getJSON(t, server.URL+"/api/projects?sort_by=bogus&sort_order=sideways", &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []float64{90, 85, 70}, []float64{
		page.Projects[0].ManualScoreUpdated,
		page.Projects[1].ManualScoreUpdated,
		page.Projects[2].ManualScoreUpdated,
	})
}

func TestListProjects_UnknownVisibilityIgnored(t *testing.T) {
	server := newTestServer(t)

	var all, filtered project.Page
	getJSON(t, server.URL+"/api/projects", &all)
	getJSON(t, server.URL+"/api/projects?project_visibility=hidden", &filtered)
	require.Equal(t, all.Total, filtered.Total)

	var private project.Page
	getJSON(t, server.URL+"/api/projects?project_visibility=private", &private)
	require.Equal(t, 1, private.Total)
}

func TestListProjects_EmptyPage(t *testing.T) {
	server := newTestServer(t)

	var page project.Page
	resp := getJSON(t, server.URL+"/api/projects?page=50&limit=8", &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.NotNil(t, page.Projects)
	require.Empty(t, page.Projects)
}

func TestProjectDetail(t *testing.T) {
	server := newTestServer(t)

	var detail map[string]any
	resp := getJSON(t, server.URL+"/api/projects/p1", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "p1", detail["project_id"])
	require.Equal(t, "Star Drift", detail["manual_title"])
	require.Equal(t, "2024-01-15 10:30:00", detail["create_tm"])

	// Nullable columns are present with explicit nulls.
	require.Contains(t, detail, "author_name")
	require.Nil(t, detail["author_name"])
	require.Contains(t, detail, "screenshot_url")
	require.Nil(t, detail["screenshot_url"])
}

func TestProjectDetail_NotFound(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, server.URL+"/api/projects/ghost", &body)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, body, "detail")
}

func putScore(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUpdateScore(t *testing.T) {
	server := newTestServer(t)

	resp := putScore(t, server.URL+"/api/projects/p1/score", `{"new_score": 1000}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, "success", result["status"])
	require.Equal(t, 1000.0, result["new_score"])

	var detail map[string]any
	getJSON(t, server.URL+"/api/projects/p1", &detail)
	require.Equal(t, 1000.0, detail["manual_score_updated"])
}

func TestUpdateScore_OutOfRange(t *testing.T) {
	server := newTestServer(t)

	for _, body := range []string{`{"new_score": -1}`, `{"new_score": 1001}`} {
		resp := putScore(t, server.URL+"/api/projects/p1/score", body)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body=%s", body)
	}

	// The stored value is unchanged after rejected updates.
	var detail map[string]any
	getJSON(t, server.URL+"/api/projects/p1", &detail)
	require.Equal(t, 90.0, detail["manual_score_updated"])
}

func TestUpdateScore_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp := putScore(t, server.URL+"/api/projects/ghost/score", `{"new_score": 10}`)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateScore_MalformedBody(t *testing.T) {
	server := newTestServer(t)

	for _, body := range []string{``, `{}`, `not json`} {
		resp := putScore(t, server.URL+"/api/projects/p1/score", body)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body=%q", body)
	}
}

func TestCategories(t *testing.T) {
	server := newTestServer(t)

	var tree project.CategoryTree
	resp := getJSON(t, server.URL+"/api/categories", &tree)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"games", "tools"}, tree.L1)
	require.Equal(t, []string{"arcade", "puzzle"}, tree.L2Map["games"])
	require.Equal(t, []string{"cli"}, tree.L2Map["tools"])
}

func TestAnalysis(t *testing.T) {
	server := newTestServer(t)

	var stats project.Analysis
	resp := getJSON(t, server.URL+"/api/analysis", &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, stats.L1Analysis, 2)
	require.Equal(t, "games", stats.L1Analysis[0].CategoryL1)
	require.Equal(t, 2, stats.L1Analysis[0].ProjectCount)
	require.Len(t, stats.L2Map["games"], 2)
}

func TestRootRedirect(t *testing.T) {
	server := newTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestStaticFiles(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/static/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSHeaders(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
