package sqlxrepos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func newID() string {
	return uuid.New().String()
}

// isID reports whether id can be stored in a UUID column.
func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
