package project

// Project is one row of the showcase table. Records are created and deleted
// by an external data pipeline; this service only reads them and adjusts
// ManualScoreUpdated. Nullable columns are pointers so the JSON carries an
// explicit null rather than a zero value.
type Project struct {
	ProjectID          string  `json:"project_id"`
	ManualTitle        string  `json:"manual_title"`
	ManualSummary      string  `json:"manual_summary"`
	AuthorID           string  `json:"author_id"`
	MainDomain         *string `json:"main_domain"`
	CreateTime         *string `json:"create_tm"`
	ForkedCount        int64   `json:"project_forked_acc_cnt"`
	OpenedCount        int64   `json:"project_opened_acc_cnt"`
	AuthorName         *string `json:"author_name"`
	CategoryL1         *string `json:"category_l1"`
	CategoryL2         *string `json:"category_l2"`
	ManualScore        float64 `json:"manual_score"`
	ManualScoreUpdated float64 `json:"manual_score_updated"`
	ScreenshotURL      *string `json:"screenshot_url"`
	Description        *string `json:"description"`
	Visibility         string  `json:"project_visibility"`
}

// Page is the listing response envelope.
type Page struct {
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
	Projects   []Project `json:"projects"`
}

// CategoryTree is the two-level category hierarchy observed in the data.
// Every l1 value appears as a key in L2Map, possibly with an empty slice.
type CategoryTree struct {
	L1    []string            `json:"l1"`
	L2Map map[string][]string `json:"l2Map"`
}

// CategoryStat summarizes one l1 category.
type CategoryStat struct {
	CategoryL1   string `json:"category_l1"`
	ProjectCount int    `json:"project_count"`
	AuthorCount  int    `json:"author_count"`
}

// SubcategoryStat summarizes one l2 category within its l1 parent.
type SubcategoryStat struct {
	CategoryL2   string `json:"category_l2"`
	ProjectCount int    `json:"project_count"`
	AuthorCount  int    `json:"author_count"`
}

// Analysis aggregates distinct project and author counts per category level.
type Analysis struct {
	L1Analysis []CategoryStat               `json:"l1_analysis"`
	L2Map      map[string][]SubcategoryStat `json:"l2_map"`
}
