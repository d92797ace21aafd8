package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// DateFilter selects a relative due-date window, computed against "now"
// at request time using the server's local day boundaries.
type DateFilter string

// Supported date filters.
const (
	DateFilterToday    DateFilter = "today"
	DateFilterThisWeek DateFilter = "this-week"
	DateFilterOverdue  DateFilter = "overdue"
	DateFilterUpcoming DateFilter = "upcoming"
)

// Valid reports whether the filter is empty or one of the known values.
func (f DateFilter) Valid() bool {
	switch f {
	case "", DateFilterToday, DateFilterThisWeek, DateFilterOverdue, DateFilterUpcoming:
		return true
	}
	return false
}

// sortColumns whitelists the exposed sort fields against their columns.
// Anything outside the map falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"category":  "category",
}

// TaskQuery describes a filtered, sorted task listing. OwnerID is
// mandatory and always applied; the remaining fields are optional.
type TaskQuery struct {
	OwnerID    uuid.UUID
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	Category   domain.TaskCategory
	DateFilter DateFilter
	Search     string
	SortBy     string
	SortOrder  string
}

// clause is a SQL fragment with ?-style placeholders, renumbered to
// positional $n parameters during assembly.
type clause struct {
	expr string
	args []any
}

// Build compiles the query into a WHERE clause with positional arguments
// and an ORDER BY expression, relative to now.
//
// The overdue date filter carries an implicit "status <> done" constraint
// that replaces any explicit status filter, mirroring how the filters
// compose as last-applied-wins writes into a single filter document.
func (q TaskQuery) Build(now time.Time) (string, []any, string) {
	var statusClause *clause
	if q.Status != "" {
		statusClause = &clause{"status = ?", []any{q.Status}}
	}

	var rest []clause
	if q.Priority != "" {
		rest = append(rest, clause{"priority = ?", []any{q.Priority}})
	}
	if q.Category != "" {
		rest = append(rest, clause{"category = ?", []any{q.Category}})
	}

	today := startOfDay(now)
	switch q.DateFilter {
	case DateFilterToday:
		rest = append(rest, clause{
			"due_date >= ? AND due_date < ?",
			[]any{today, today.AddDate(0, 0, 1)},
		})
	case DateFilterThisWeek:
		rest = append(rest, clause{
			"due_date >= ? AND due_date < ?",
			[]any{today, today.AddDate(0, 0, 7)},
		})
	case DateFilterOverdue:
		rest = append(rest, clause{"due_date < ?", []any{today}})
		statusClause = &clause{"status <> ?", []any{domain.TaskStatusDone}}
	case DateFilterUpcoming:
		rest = append(rest, clause{"due_date >= ?", []any{today}})
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		rest = append(rest, clause{
			"(title ILIKE ? OR description ILIKE ? OR notes ILIKE ?)",
			[]any{pattern, pattern, pattern},
		})
	}

	// Owner scoping is assembled first and unconditionally; it cannot be
	// filtered away by any parameter combination.
	clauses := []clause{{"user_id = ?", []any{q.OwnerID}}}
	if statusClause != nil {
		clauses = append(clauses, *statusClause)
	}
	clauses = append(clauses, rest...)

	var (
		exprs []string
		args  []any
	)
	for _, c := range clauses {
		expr := c.expr
		for _, a := range c.args {
			expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(args)+1), 1)
			args = append(args, a)
		}
		exprs = append(exprs, expr)
	}

	return strings.Join(exprs, " AND "), args, q.orderBy()
}

// orderBy resolves the sort directive against the column whitelist.
func (q TaskQuery) orderBy() string {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// startOfDay truncates t to its local day boundary.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekBounds returns the Sunday-started calendar week containing now,
// as [start, end) day boundaries in local time. Used by the this-week
// statistics count.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
