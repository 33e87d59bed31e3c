package pkg

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cinecms/backend/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParseListFilter extracts the shared list query parameters.
//
// status is only set on the filter when the parameter is present, so a
// legitimate status=0 filter is not mistaken for "no filter".
func ParseListFilter(c *gin.Context) domain.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := domain.ListFilter{
		Title:    c.Query("title"),
		Page:     page,
		PageSize: pageSize,
		Sort:     c.Query("sort"),
	}

	if raw, ok := c.GetQuery("status"); ok && raw != "" {
		if status, err := strconv.Atoi(raw); err == nil {
			filter.Status = &status
		}
	}

	return filter
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET for the page.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// TitleLike returns a GORM scope restricting rows to those whose title
// contains the given fragment. A no-op when the fragment is empty.
func TitleLike(column, fragment string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if fragment == "" {
			return db
		}
		return db.Where(column+" LIKE ?", "%"+fragment+"%")
	}
}

// StatusEq returns a GORM scope restricting rows to an exact status value.
// A nil status means no filter; zero is a real value and is applied.
func StatusEq(column string, status *int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where(column+" = ?", *status)
	}
}

// SortBy returns a GORM scope that applies ORDER BY from a "field:direction"
// sort expression. Only field names present in the allowed list are accepted;
// anything else falls back to the resource's default order, so list results
// are always deterministically ordered. Field names are validated against a
// strict pattern to prevent SQL injection. prefix qualifies the column when
// the query joins other tables ("t." for an aliased base table, "" otherwise)
// and is applied to the parsed field only, never to defaultOrder.
func SortBy(sort string, allowed []string, prefix, defaultOrder string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if order, ok := parseSort(sort, allowed); ok {
			return db.Order(prefix + order)
		}
		return db.Order(defaultOrder)
	}
}

// parseSort validates and converts "field:direction" to an ORDER BY fragment.
func parseSort(sort string, allowed []string) (string, bool) {
	parts := strings.SplitN(sort, ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	field := strings.TrimSpace(parts[0])
	direction := strings.TrimSpace(strings.ToLower(parts[1]))

	if direction != "asc" && direction != "desc" {
		return "", false
	}
	if !validFieldName.MatchString(field) {
		return "", false
	}
	if !slices.Contains(allowed, field) {
		return "", false
	}

	return field + " " + direction, true
}

// NewPageResult creates a PageResult with computed TotalPages.
func NewPageResult[T any](items []T, total int64, filter domain.ListFilter) *domain.PageResult[T] {
	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.PageSize)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
}
