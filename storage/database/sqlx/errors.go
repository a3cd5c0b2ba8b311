package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
)

// postgres error codes
const (
	foreignKeyViolation pq.ErrorCode = "23503"
	uniqueViolation     pq.ErrorCode = "23505"
	invalidTextRepr     pq.ErrorCode = "22P02"
)

type fkey struct {
	entity string // referenced entity
	field  string
}

// fkeys maps foreign key constraint names of the schema to what they reference.
var fkeys = map[string]fkey{
	"semester_year_id_fkey":        {courseinfo.EntityYear, "year_id"},
	"semester_period_id_fkey":      {courseinfo.EntityPeriod, "period_id"},
	"instructor_user_id_fkey":      {courseinfo.EntityUser, "user_id"},
	"student_user_id_fkey":         {courseinfo.EntityUser, "user_id"},
	"section_semester_id_fkey":     {courseinfo.EntitySemester, "semester_id"},
	"section_course_id_fkey":       {courseinfo.EntityCourse, "course_id"},
	"section_instructor_id_fkey":   {courseinfo.EntityInstructor, "instructor_id"},
	"registration_student_id_fkey": {courseinfo.EntityStudent, "student_id"},
	"registration_section_id_fkey": {courseinfo.EntitySection, "section_id"},
}

// fkeyByColumn maps foreign key columns to what they reference.
var fkeyByColumn = make(map[string]fkey, len(fkeys))

func init() {
	for _, fk := range fkeys {
		fkeyByColumn[fk.field] = fk
	}
}

func (fk fkey) err(id string) error {
	return core.NewReferenceError(fk.entity, fk.field, id)
}

// unique constraints of the users table
var userUniques = map[string]error{
	"users_username_key": user.ErrUsernameExists,
	"users_email_key":    user.ErrEmailExists,
}

func asPqErr(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// trapWriteErr maps constraint violations of an insert or update to the app errors.
// refs holds the values written to the foreign key columns.
func trapWriteErr(err error, refs map[string]string, msg string) error {
	if pqErr, ok := asPqErr(err); ok {
		switch pqErr.Code {
		case uniqueViolation:
			if c, ok := courseinfo.Constraints[pqErr.Constraint]; ok {
				return c.Err()
			}
			if uErr, ok := userUniques[pqErr.Constraint]; ok {
				return uErr
			}
		case foreignKeyViolation:
			if fk, ok := fkeys[pqErr.Constraint]; ok {
				return fk.err(refs[fk.field])
			}
		}
	}
	return errors.Wrap(err, msg)
}

// trapDeleteErr maps a restricted delete to an in use error.
func trapDeleteErr(err error, entity, id, msg string) error {
	if pqErr, ok := asPqErr(err); ok && pqErr.Code == foreignKeyViolation {
		return core.NewInUseError(entity, id)
	}
	return errors.Wrap(err, msg)
}

// trapNoRowsErr maps "no rows" (and ids that are not even UUIDs) to notFound.
func trapNoRowsErr(err error, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	if pqErr, ok := asPqErr(err); ok && pqErr.Code == invalidTextRepr {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// checkAffected returns notFound when the statement did not touch any row.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
