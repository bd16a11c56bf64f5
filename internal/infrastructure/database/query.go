package database

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsFold matches rows whose column contains term, ignoring case.
// SQLite LIKE is already case-insensitive for ASCII.
func (d Dialect) ContainsFold(column, term string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	if d == DialectPostgres {
		return sq.Expr(column+` ILIKE ? ESCAPE '\'`, pattern)
	}
	return sq.Expr(column+` LIKE ? ESCAPE '\'`, pattern)
}
