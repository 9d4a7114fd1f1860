package pgsql

import (
	"strconv"
	"strings"
)

// whereClause accumulates AND-ed conditions with positional arguments. A condition marks
// each argument with "?", and every mark is rewritten to the next $n in order.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// addRaw appends a condition that takes no argument.
func (w *whereClause) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

// next returns the placeholder for an argument appended after the conditions, such as a LIMIT.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
