package courseinfo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core"
)

// entities
const (
	EntityPeriod       = "period"
	EntityYear         = "year"
	EntitySemester     = "semester"
	EntityCourse       = "course"
	EntityInstructor   = "instructor"
	EntityStudent      = "student"
	EntitySection      = "section"
	EntityRegistration = "registration"
	EntityUser         = "user"
)

var (
	// errors
	ErrPeriodNotFound       = errors.New("period not found")
	ErrYearNotFound         = errors.New("year not found")
	ErrSemesterNotFound     = errors.New("semester not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrInstructorNotFound   = errors.New("instructor not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// Constraint is a uniqueness tuple. Storage backends use the same names for their UNIQUE constraints.
type Constraint struct {
	Entity string
	Name   string
	Fields []string
}

func (c Constraint) Err() error {
	return core.NewConstraintError(c.Entity, c.Name, c.Fields...)
}

var (
	PeriodSequenceUnique = Constraint{EntityPeriod, "period_sequence_key", []string{"sequence"}}
	PeriodNameUnique     = Constraint{EntityPeriod, "period_name_key", []string{"name"}}
	YearUnique           = Constraint{EntityYear, "year_year_key", []string{"year"}}
	SemesterUnique       = Constraint{EntitySemester, "semester_year_period_key", []string{"year", "period"}}
	CourseNumberUnique   = Constraint{EntityCourse, "course_number_key", []string{"number"}}
	InstructorUnique     = Constraint{EntityInstructor, "instructor_name_key", []string{"first_name", "last_name", "disambiguator"}}
	StudentUnique        = Constraint{EntityStudent, "student_name_key", []string{"first_name", "last_name", "disambiguator"}}
	SectionUnique        = Constraint{EntitySection, "section_semester_course_name_key", []string{"semester", "course", "name"}}
	RegistrationUnique   = Constraint{EntityRegistration, "registration_student_section_key", []string{"student", "section"}}
	Constraints          = map[string]Constraint{}
)

func init() {
	for _, c := range []Constraint{
		PeriodSequenceUnique, PeriodNameUnique, YearUnique, SemesterUnique, CourseNumberUnique,
		InstructorUnique, StudentUnique, SectionUnique, RegistrationUnique,
	} {
		Constraints[c.Name] = c
	}
}

// Repositories create, read, update and delete course info entities.
// Create and Update fail with *core.ConstraintError when a uniqueness tuple is taken and with
// *core.ReferenceError when a referenced entity does not exist; both checks are atomic with the write.
// Delete fails with an in use *core.ReferenceError while other rows still reference the entity.
// Get fails with the entity's not found error.
type (
	PeriodRepository interface {
		CreatePeriod(ctx context.Context, p Period) (Period, error)
		GetPeriod(ctx context.Context, id string) (Period, error)
		QueryPeriods(ctx context.Context) ([]Period, error)
		UpdatePeriod(ctx context.Context, p Period) (Period, error)
		DeletePeriod(ctx context.Context, id string) error
	}

	YearRepository interface {
		CreateYear(ctx context.Context, y Year) (Year, error)
		GetYear(ctx context.Context, id string) (Year, error)
		QueryYears(ctx context.Context) ([]Year, error)
		UpdateYear(ctx context.Context, y Year) (Year, error)
		DeleteYear(ctx context.Context, id string) error
	}

	// SemesterRepository resolves Semester.Year and Semester.Period by ID.
	SemesterRepository interface {
		CreateSemester(ctx context.Context, s Semester) (Semester, error)
		GetSemester(ctx context.Context, id string) (Semester, error)
		QuerySemesters(ctx context.Context) ([]Semester, error)
		UpdateSemester(ctx context.Context, s Semester) (Semester, error)
		DeleteSemester(ctx context.Context, id string) error
	}

	CourseRepository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		QueryCourses(ctx context.Context) ([]Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
	}

	InstructorRepository interface {
		CreateInstructor(ctx context.Context, i Instructor) (Instructor, error)
		GetInstructor(ctx context.Context, id string) (Instructor, error)
		QueryInstructors(ctx context.Context) ([]Instructor, error)
		UpdateInstructor(ctx context.Context, i Instructor) (Instructor, error)
		DeleteInstructor(ctx context.Context, id string) error
	}

	StudentRepository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		QueryStudents(ctx context.Context) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	// SectionRepository resolves Section.Semester, Section.Course and Section.Instructor by ID.
	SectionRepository interface {
		CreateSection(ctx context.Context, s Section) (Section, error)
		GetSection(ctx context.Context, id string) (Section, error)
		QuerySections(ctx context.Context, filter SectionFilter) ([]Section, error)
		UpdateSection(ctx context.Context, s Section) (Section, error)
		DeleteSection(ctx context.Context, id string) error
	}

	// RegistrationRepository resolves Registration.Student and Registration.Section by ID.
	RegistrationRepository interface {
		CreateRegistration(ctx context.Context, r Registration) (Registration, error)
		GetRegistration(ctx context.Context, id string) (Registration, error)
		QueryRegistrations(ctx context.Context, filter RegistrationFilter) ([]Registration, error)
		UpdateRegistration(ctx context.Context, r Registration) (Registration, error)
		DeleteRegistration(ctx context.Context, id string) error
	}

	Repository interface {
		PeriodRepository
		YearRepository
		SemesterRepository
		CourseRepository
		InstructorRepository
		StudentRepository
		SectionRepository
		RegistrationRepository
	}
)
