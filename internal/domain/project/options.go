package project

import "strings"

// SortField enumerates the columns listing results may be ordered by. The
// enum is the allow-list: sort fields end up in statement text as syntax, so
// only values produced here are ever composed into a query.
type SortField string

const (
	SortByManualScore  SortField = "manual_score"
	SortByUpdatedScore SortField = "manual_score_updated"
	SortByCreateTime   SortField = "create_tm"
	SortByOpenedCount  SortField = "project_opened_acc_cnt"
)

// ParseSortField maps a request value onto the allow-list. Unknown values
// silently fall back to the updated score, they never raise an error.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByManualScore, SortByUpdatedScore, SortByCreateTime, SortByOpenedCount:
		return SortField(s)
	default:
		return SortByUpdatedScore
	}
}

// Column returns the fixed column literal for this sort field. Anything
// outside the enum resolves to the default so the result is always safe to
// place into statement text.
func (f SortField) Column() string {
	switch f {
	case SortByManualScore, SortByCreateTime, SortByOpenedCount:
		return string(f)
	default:
		return string(SortByUpdatedScore)
	}
}

// SortOrder is the listing sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc case-insensitively and falls back to desc.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(s) {
	case "asc":
		return SortAsc
	default:
		return SortDesc
	}
}

// Keyword returns the fixed ORDER BY direction keyword.
func (o SortOrder) Keyword() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}

// ListOptions provides filtering, sorting and pagination options for listing
// projects. String filters are exact-match and skipped when empty; Search
// matches description or manual_summary by case-insensitive substring. The
// same predicate drives both the page query and the total count.
type ListOptions struct {
	CategoryL1 string
	CategoryL2 string
	Search     string
	Visibility Visibility
	SortBy     SortField
	SortOrder  SortOrder
	Limit      int
	Offset     int
}

// Visibility is the project visibility flag. The empty value means the
// filter is absent.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility accepts exactly "public" or "private"; anything else is
// treated as no filter at all.
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(s)
	default:
		return ""
	}
}
