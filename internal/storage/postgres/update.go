package postgres

import (
	"fmt"
	"strings"
)

// Assignments collects "column = $n" pairs for a partial UPDATE. Setting a
// column to nil writes NULL, which is how optional fields are removed.
type Assignments struct {
	cols []string
	args []any
}

func (a *Assignments) Set(column string, value any) {
	a.cols = append(a.cols, column)
	a.args = append(a.args, value)
}

func (a *Assignments) Len() int { return len(a.cols) }

// Clause renders the SET list. Placeholders start at $1; extra WHERE
// arguments follow at $Len()+1 onwards.
func (a *Assignments) Clause() (string, []any) {
	parts := make([]string, len(a.cols))
	for i, col := range a.cols {
		parts[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return strings.Join(parts, ", "), append([]any(nil), a.args...)
}

// Placeholder returns the placeholder of the i-th argument (1-based) that
// follows the SET list.
func (a *Assignments) Placeholder(i int) string {
	return fmt.Sprintf("$%d", len(a.cols)+i)
}
