package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"realestateapi/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// queryBuilder accumulates WHERE conditions and positional arguments.
type queryBuilder struct {
	conditions []string
	args       []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// BuildFilteredQuery renders the SELECT for a filtered property listing.
// Text criteria are matched literally and case-insensitively.
func BuildFilteredQuery(f model.PropertyFilter) (string, []any) {
	b := &queryBuilder{}

	switch {
	case f.Name != "":
		p := b.arg(containsPattern(f.Name))
		b.conditions = append(b.conditions, fmt.Sprintf("(doc->>'name' ILIKE %s OR doc->>'address' ILIKE %s)", p, p))
	case f.Address != "":
		b.conditions = append(b.conditions, "doc->>'address' ILIKE "+b.arg(containsPattern(f.Address)))
	}

	if f.MinPrice != nil {
		b.conditions = append(b.conditions, "(doc->>'price')::numeric >= "+b.arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		b.conditions = append(b.conditions, "(doc->>'price')::numeric <= "+b.arg(*f.MaxPrice))
	}

	var sb strings.Builder
	sb.WriteString("SELECT doc FROM properties")
	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conditions, " AND "))
	}
	sb.WriteString(" ORDER BY id")
	if f.Paginated() {
		sb.WriteString(" LIMIT " + b.arg(f.PageSize))
		sb.WriteString(" OFFSET " + b.arg(f.Skip()))
	}
	return sb.String(), b.args
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
