package sqlxrepos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/volatiletech/null/v8"

	"github.com/davalosk/ezu/core/courseinfo"
)

// Rows scanned from the select builders below. Every column is aliased with its
// table prefix, so the rows of referenced entities can be embedded.
type (
	periodRow struct {
		PeriodID       string `db:"period_id"`
		PeriodSequence int    `db:"period_sequence"`
		PeriodName     string `db:"period_name"`
	}

	yearRow struct {
		YearID string `db:"year_id"`
		Year   int    `db:"year"`
	}

	semesterRow struct {
		SemesterID string `db:"semester_id"`
		yearRow
		periodRow
	}

	courseRow struct {
		CourseID     string `db:"course_id"`
		CourseNumber string `db:"course_number"`
		CourseName   string `db:"course_name"`
	}

	instructorRow struct {
		InstructorID            string      `db:"instructor_id"`
		InstructorUserID        null.String `db:"instructor_user_id"`
		InstructorFirstName     string      `db:"instructor_first_name"`
		InstructorLastName      string      `db:"instructor_last_name"`
		InstructorDisambiguator string      `db:"instructor_disambiguator"`
	}

	studentRow struct {
		StudentID            string      `db:"student_id"`
		StudentUserID        null.String `db:"student_user_id"`
		StudentFirstName     string      `db:"student_first_name"`
		StudentLastName      string      `db:"student_last_name"`
		StudentDisambiguator string      `db:"student_disambiguator"`
	}

	sectionRow struct {
		SectionID   string `db:"section_id"`
		SectionName string `db:"section_name"`
		semesterRow
		courseRow
		instructorRow
	}

	registrationRow struct {
		RegistrationID string `db:"registration_id"`
		studentRow
		sectionRow
	}
)

var (
	periodColumns     = []string{"p.id AS period_id", "p.sequence AS period_sequence", "p.name AS period_name"}
	yearColumns       = []string{"y.id AS year_id", "y.year AS year"}
	semesterColumns   = concat([]string{"sm.id AS semester_id"}, yearColumns, periodColumns)
	courseColumns     = []string{"c.id AS course_id", "c.number AS course_number", "c.name AS course_name"}
	instructorColumns = []string{
		"i.id AS instructor_id", "i.user_id AS instructor_user_id", "i.first_name AS instructor_first_name",
		"i.last_name AS instructor_last_name", "i.disambiguator AS instructor_disambiguator",
	}
	studentColumns = []string{
		"st.id AS student_id", "st.user_id AS student_user_id", "st.first_name AS student_first_name",
		"st.last_name AS student_last_name", "st.disambiguator AS student_disambiguator",
	}
	sectionColumns = concat(
		[]string{"sc.id AS section_id", "sc.name AS section_name"},
		semesterColumns, courseColumns, instructorColumns,
	)
	registrationColumns = concat([]string{"r.id AS registration_id"}, studentColumns, sectionColumns)

	// default orderings
	periodOrdering       = []string{"p.sequence"}
	yearOrdering         = []string{"y.year"}
	semesterOrdering     = []string{"y.year", "p.sequence"}
	courseOrdering       = []string{"c.number", "c.name"}
	instructorOrdering   = []string{"i.last_name", "i.first_name", "i.disambiguator"}
	studentOrdering      = []string{"st.last_name", "st.first_name", "st.disambiguator"}
	sectionOrdering      = []string{"c.number", "sc.name", "y.year", "p.sequence"}
	registrationOrdering = concat(sectionOrdering, studentOrdering)
)

func concat(slices ...[]string) []string {
	var res []string
	for _, s := range slices {
		res = append(res, s...)
	}
	return res
}

func selectPeriods() sq.SelectBuilder {
	return psql.Select(periodColumns...).From("period p")
}

func selectYears() sq.SelectBuilder {
	return psql.Select(yearColumns...).From("year y")
}

func joinSemester(qs sq.SelectBuilder) sq.SelectBuilder {
	return qs.Join("year y ON y.id = sm.year_id").Join("period p ON p.id = sm.period_id")
}

func selectSemesters() sq.SelectBuilder {
	return joinSemester(psql.Select(semesterColumns...).From("semester sm"))
}

func selectCourses() sq.SelectBuilder {
	return psql.Select(courseColumns...).From("course c")
}

func selectInstructors() sq.SelectBuilder {
	return psql.Select(instructorColumns...).From("instructor i")
}

func selectStudents() sq.SelectBuilder {
	return psql.Select(studentColumns...).From("student st")
}

func joinSection(qs sq.SelectBuilder) sq.SelectBuilder {
	qs = qs.Join("semester sm ON sm.id = sc.semester_id")
	return joinSemester(qs).
		Join("course c ON c.id = sc.course_id").
		Join("instructor i ON i.id = sc.instructor_id")
}

func selectSections() sq.SelectBuilder {
	return joinSection(psql.Select(sectionColumns...).From("section sc"))
}

func selectRegistrations() sq.SelectBuilder {
	qs := psql.Select(registrationColumns...).
		From("registration r").
		Join("student st ON st.id = r.student_id").
		Join("section sc ON sc.id = r.section_id")
	return joinSection(qs)
}

func (r periodRow) period() courseinfo.Period {
	return courseinfo.Period{ID: r.PeriodID, Sequence: r.PeriodSequence, Name: r.PeriodName}
}

func (r yearRow) year() courseinfo.Year {
	return courseinfo.Year{ID: r.YearID, Year: r.Year}
}

func (r semesterRow) semester() courseinfo.Semester {
	return courseinfo.Semester{ID: r.SemesterID, Year: r.yearRow.year(), Period: r.periodRow.period()}
}

func (r courseRow) course() courseinfo.Course {
	return courseinfo.Course{ID: r.CourseID, Number: r.CourseNumber, Name: r.CourseName}
}

func (r instructorRow) instructor() courseinfo.Instructor {
	return courseinfo.Instructor{
		ID: r.InstructorID,
		Person: courseinfo.Person{
			UserID:        r.InstructorUserID,
			FirstName:     r.InstructorFirstName,
			LastName:      r.InstructorLastName,
			Disambiguator: r.InstructorDisambiguator,
		},
	}
}

func (r studentRow) student() courseinfo.Student {
	return courseinfo.Student{
		ID: r.StudentID,
		Person: courseinfo.Person{
			UserID:        r.StudentUserID,
			FirstName:     r.StudentFirstName,
			LastName:      r.StudentLastName,
			Disambiguator: r.StudentDisambiguator,
		},
	}
}

func (r sectionRow) section() courseinfo.Section {
	return courseinfo.Section{
		ID:         r.SectionID,
		Name:       r.SectionName,
		Semester:   r.semesterRow.semester(),
		Course:     r.courseRow.course(),
		Instructor: r.instructorRow.instructor(),
	}
}

func (r registrationRow) registration() courseinfo.Registration {
	return courseinfo.Registration{
		ID:      r.RegistrationID,
		Student: r.studentRow.student(),
		Section: r.sectionRow.section(),
	}
}
