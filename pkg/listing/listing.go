package listing

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the direction applied to the sort column.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Params captures the common list query surface: pagination, free-text
// search, visibility toggles, and whitelisted sorting.
//
// Visibility composes as: an explicit isActive filters on exactly that
// value; otherwise includeInactive=false restricts to active rows.
// includeDeleted lifts the soft-delete scope.
type Params struct {
	Page            int
	Limit           int
	Search          string
	IsActive        *bool
	IncludeInactive bool
	IncludeDeleted  bool
	SortBy          string
	SortOrder       SortOrder
}

// ParseParams reads the shared list parameters from the request query.
// Out-of-range values are clamped rather than rejected, and the sort
// column falls back to the default when it is not in the whitelist.
func ParseParams(r *http.Request, defaultSort string, sortable map[string]string) Params {
	query := r.URL.Query()

	page := parsePositiveInt(query.Get("page"), DefaultPage)
	limit := parsePositiveInt(query.Get("limit"), DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy := strings.TrimSpace(query.Get("sortBy"))
	if _, ok := sortable[sortBy]; !ok {
		sortBy = defaultSort
	}

	order := SortDesc
	if strings.EqualFold(query.Get("sortOrder"), string(SortAsc)) {
		order = SortAsc
	}

	return Params{
		Page:            page,
		Limit:           limit,
		Search:          strings.TrimSpace(query.Get("search")),
		IsActive:        parseOptionalBool(query.Get("isActive")),
		IncludeInactive: parseBool(query.Get("includeInactive")),
		IncludeDeleted:  parseBool(query.Get("includeDeleted")),
		SortBy:          sortBy,
		SortOrder:       order,
	}
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(raw)
	return err == nil && value
}

func parseOptionalBool(raw string) *bool {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// ActiveFilter resolves the visibility toggles into an optional
// is_active condition. Nil means no restriction.
func (p Params) ActiveFilter() *bool {
	if p.IsActive != nil {
		return p.IsActive
	}
	if !p.IncludeInactive {
		active := true
		return &active
	}
	return nil
}

// Offset translates the page/limit pair into a SQL offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause resolves the request sort key through the column whitelist.
func (p Params) OrderClause(sortable map[string]string) string {
	column, ok := sortable[p.SortBy]
	if !ok {
		return ""
	}
	direction := "DESC"
	if p.SortOrder == SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// SearchClause builds a case-insensitive LIKE condition ORed across the
// given columns. It returns an empty clause when no search was given.
func (p Params) SearchClause(columns []string) (string, []any) {
	if p.Search == "" || len(columns) == 0 {
		return "", nil
	}
	needle := "%" + strings.ToLower(p.Search) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, needle)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// Pagination is the envelope block describing the current result window.
type Pagination struct {
	CurrentPage  int     `json:"currentPage"`
	TotalPages   int     `json:"totalPages"`
	TotalItems   int64   `json:"totalItems"`
	ItemsPerPage int     `json:"itemsPerPage"`
	HasNext      bool    `json:"hasNext"`
	HasPrev      bool    `json:"hasPrev"`
	NextPageURL  *string `json:"nextPageUrl"`
	PrevPageURL  *string `json:"prevPageUrl"`
}

// NewPagination derives the pagination block from the request parameters
// and the total row count. Page URLs preserve every other query parameter.
func NewPagination(r *http.Request, params Params, totalItems int64) Pagination {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int((totalItems + int64(params.Limit) - 1) / int64(params.Limit))
	}

	pg := Pagination{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: params.Limit,
		HasNext:      params.Page < totalPages,
		HasPrev:      params.Page > 1,
	}
	if pg.HasNext {
		pg.NextPageURL = pageURL(r, params.Page+1)
	}
	if pg.HasPrev {
		pg.PrevPageURL = pageURL(r, params.Page-1)
	}
	return pg
}

func pageURL(r *http.Request, page int) *string {
	if r == nil {
		return nil
	}
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
