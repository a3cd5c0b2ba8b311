package sqlxrepos

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
)

func TestTrapWriteErr(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		refs map[string]string
		want error
	}{
		{
			name: "unique section",
			err:  &pq.Error{Code: uniqueViolation, Constraint: "section_semester_course_name_key"},
			want: courseinfo.SectionUnique.Err(),
		},
		{
			name: "unique period name",
			err:  &pq.Error{Code: uniqueViolation, Constraint: "period_name_key"},
			want: courseinfo.PeriodNameUnique.Err(),
		},
		{
			name: "unique username",
			err:  &pq.Error{Code: uniqueViolation, Constraint: "users_username_key"},
			want: user.ErrUsernameExists,
		},
		{
			name: "missing course",
			err:  &pq.Error{Code: foreignKeyViolation, Constraint: "section_course_id_fkey"},
			refs: map[string]string{"course_id": "c1", "semester_id": "s1"},
			want: core.NewReferenceError(courseinfo.EntityCourse, "course_id", "c1"),
		},
		{
			name: "missing user",
			err:  &pq.Error{Code: foreignKeyViolation, Constraint: "student_user_id_fkey"},
			refs: map[string]string{"user_id": "u1"},
			want: core.NewReferenceError(courseinfo.EntityUser, "user_id", "u1"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trapWriteErr(tt.err, tt.refs, "inserting"))
		})
	}

	t.Run("unknown errors are wrapped", func(t *testing.T) {
		err := trapWriteErr(other, nil, "inserting section")
		assert.EqualError(t, err, "inserting section: connection reset")
		assert.Equal(t, other, errors.Cause(err))

		unknown := &pq.Error{Code: uniqueViolation, Constraint: "some_other_key"}
		assert.Equal(t, unknown, errors.Cause(trapWriteErr(unknown, nil, "inserting")))
	})
}

func TestTrapDeleteErr(t *testing.T) {
	err := trapDeleteErr(&pq.Error{Code: foreignKeyViolation, Constraint: "section_course_id_fkey"}, "course", "c1", "deleting course")
	assert.Equal(t, core.NewInUseError("course", "c1"), err)

	err = trapDeleteErr(sql.ErrConnDone, "course", "c1", "deleting course")
	assert.Equal(t, sql.ErrConnDone, errors.Cause(err))
}

func TestTrapNoRowsErr(t *testing.T) {
	assert.Equal(t, courseinfo.ErrYearNotFound, trapNoRowsErr(sql.ErrNoRows, courseinfo.ErrYearNotFound, "selecting year"))
	assert.Equal(t, courseinfo.ErrYearNotFound,
		trapNoRowsErr(&pq.Error{Code: invalidTextRepr}, courseinfo.ErrYearNotFound, "selecting year"))
}

func TestRefIDs(t *testing.T) {
	id := "8a4a5b2c-3a3e-4f4e-9d5c-6b7a8c9d0e1f"

	refs, err := refIDs("student_id", id, "section_id", id)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"student_id": id, "section_id": id}, refs)

	_, err = refIDs("student_id", id, "section_id", "42")
	assert.Equal(t, core.NewReferenceError(courseinfo.EntitySection, "section_id", "42"), err)
}

func TestSelectBuilders(t *testing.T) {
	query, args, err := selectRegistrations().Where("r.id = ?", "x").OrderBy(registrationOrdering...).ToSql()
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"x"}, args)
	assert.Contains(t, query, "FROM registration r JOIN student st ON st.id = r.student_id")
	assert.Contains(t, query, "WHERE r.id = $1")
	assert.Contains(t, query, "ORDER BY c.number, sc.name, y.year, p.sequence, st.last_name")
}
