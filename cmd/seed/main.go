// Command seed loads sample rows into the projects table so the showcase
// front-end has data during development. Production records come from the
// external data pipeline, not from this tool.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/showcase/internal/config"
	"github.com/openshelf/showcase/internal/sqlite"
)

var categories = map[string][]string{
	"games": {"arcade", "puzzle", "strategy"},
	"tools": {"cli", "productivity"},
	"data":  {"visualization", "pipelines"},
	"web":   {"landing", "dashboard"},
}

var visibilities = []string{"public", "public", "public", "private"}

func main() {
	count := flag.Int("count", 40, "number of sample projects to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	l1s := make([]string, 0, len(categories))
	for l1 := range categories {
		l1s = append(l1s, l1)
	}

	for i := 0; i < *count; i++ {
		id := uuid.NewString()
		l1 := l1s[rng.Intn(len(l1s))]
		l2 := categories[l1][rng.Intn(len(categories[l1]))]
		author := fmt.Sprintf("author-%02d", rng.Intn(12))
		score := float64(rng.Intn(1001))
		created := time.Now().AddDate(0, 0, -rng.Intn(365)).Format("2006-01-02 15:04:05")

		_, err := db.Exec(`INSERT INTO projects (
			project_id, manual_title, manual_summary, author_id, author_name,
			main_domain, create_tm, project_forked_acc_cnt, project_opened_acc_cnt,
			category_l1, category_l2, manual_score, manual_score_updated,
			screenshot_url, description, project_visibility
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			fmt.Sprintf("Sample Project %d", i+1),
			fmt.Sprintf("A %s %s demo project", l1, l2),
			author,
			fmt.Sprintf("Author %s", author),
			fmt.Sprintf("%s.example.dev", id[:8]),
			created,
			rng.Intn(50),
			rng.Intn(500),
			l1,
			l2,
			score,
			score,
			fmt.Sprintf("https://img.example.dev/%s.png", id[:8]),
			fmt.Sprintf("Generated %s/%s sample with id %s", l1, l2, id[:8]),
			visibilities[rng.Intn(len(visibilities))],
		)
		if err != nil {
			logger.Error("failed to insert sample project", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("seeded projects", "count", *count, "db", cfg.DB.Path)
}
