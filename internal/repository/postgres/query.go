package postgres

import (
	"fmt"
	"strings"

	"github.com/betulabla/foundation/internal/types"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listQuery accumulates the WHERE clause and named arguments of a list query
type listQuery struct {
	conditions []string
	args       map[string]interface{}
}

func newListQuery() *listQuery {
	return &listQuery{args: make(map[string]interface{})}
}

// eq adds `column = :param`
func (q *listQuery) eq(column, param string, value interface{}) *listQuery {
	q.conditions = append(q.conditions, fmt.Sprintf("%s = :%s", column, param))
	q.args[param] = value
	return q
}

// search adds a case-insensitive substring match over any of the columns
func (q *listQuery) search(term string, columns ...string) *listQuery {
	if term == "" || len(columns) == 0 {
		return q
	}
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" ILIKE :search")
	}
	q.conditions = append(q.conditions, "("+strings.Join(parts, " OR ")+")")
	q.args["search"] = "%" + likeEscaper.Replace(term) + "%"
	return q
}

func (q *listQuery) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

// page renders ORDER BY and LIMIT/OFFSET. columns maps API ordering fields to
// SQL columns; unknown fields fall back to the default ordering. idColumn
// breaks ties so pages are stable.
func (q *listQuery) page(filter *types.QueryFilter, columns map[string]string, idColumn string) string {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	field, direction := filter.ParseOrdering()
	column, ok := columns[field]
	if !ok {
		column, direction = columns["created_at"], types.OrderDesc
	}

	clause := fmt.Sprintf(" ORDER BY %s %s, %s %s", column, strings.ToUpper(direction), idColumn, strings.ToUpper(direction))

	if !filter.IsUnlimited() {
		clause += " LIMIT :limit"
		q.args["limit"] = filter.GetLimit()
	}
	if filter.GetOffset() > 0 {
		clause += " OFFSET :offset"
		q.args["offset"] = filter.GetOffset()
	}
	return clause
}
