package courseinfo

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core"
)

type Service struct {
	repo       Repository
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Service {
	return &Service{
		repo:       repo,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

func (svc *Service) invalid(err error) error {
	return core.TranslateValidationErrors(err, svc.translator)
}

// fail wraps err with msg. Storage errors outside of the course info taxonomy are logged.
func (svc *Service) fail(err error, msg string) error {
	if !isDomainErr(err) {
		svc.logger.Error(msg, err)
	}
	return errors.Wrap(err, msg)
}

func isDomainErr(err error) bool {
	if core.IsConstraintError(err) || core.IsReferenceError(err) || core.IsValidationError(err) {
		return true
	}
	switch errors.Cause(err) {
	case ErrPeriodNotFound, ErrYearNotFound, ErrSemesterNotFound, ErrCourseNotFound,
		ErrInstructorNotFound, ErrStudentNotFound, ErrSectionNotFound, ErrRegistrationNotFound,
		context.Canceled, context.DeadlineExceeded:
		return true
	}
	return false
}

// Period

func (svc *Service) CreatePeriod(ctx context.Context, np NewPeriod) (Period, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Period{}, svc.invalid(err)
	}
	p, err := svc.repo.CreatePeriod(ctx, Period{Sequence: np.Sequence, Name: np.Name})
	if err != nil {
		return Period{}, svc.fail(err, "creating period")
	}
	return p, nil
}

func (svc *Service) GetPeriod(ctx context.Context, id string) (Period, error) {
	p, err := svc.repo.GetPeriod(ctx, id)
	if err != nil {
		return Period{}, svc.fail(err, "getting period")
	}
	return p, nil
}

func (svc *Service) QueryPeriods(ctx context.Context) ([]Period, error) {
	ps, err := svc.repo.QueryPeriods(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying periods")
	}
	return ps, nil
}

func (svc *Service) UpdatePeriod(ctx context.Context, id string, np NewPeriod) (Period, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Period{}, svc.invalid(err)
	}
	p, err := svc.repo.UpdatePeriod(ctx, Period{ID: id, Sequence: np.Sequence, Name: np.Name})
	if err != nil {
		return Period{}, svc.fail(err, "updating period")
	}
	return p, nil
}

func (svc *Service) DeletePeriod(ctx context.Context, id string) error {
	if err := svc.repo.DeletePeriod(ctx, id); err != nil {
		return svc.fail(err, "deleting period")
	}
	return nil
}

// Year

func (svc *Service) CreateYear(ctx context.Context, ny NewYear) (Year, error) {
	if err := ny.Validate(svc.validate); err != nil {
		return Year{}, svc.invalid(err)
	}
	y, err := svc.repo.CreateYear(ctx, Year{Year: ny.Year})
	if err != nil {
		return Year{}, svc.fail(err, "creating year")
	}
	return y, nil
}

func (svc *Service) GetYear(ctx context.Context, id string) (Year, error) {
	y, err := svc.repo.GetYear(ctx, id)
	if err != nil {
		return Year{}, svc.fail(err, "getting year")
	}
	return y, nil
}

func (svc *Service) QueryYears(ctx context.Context) ([]Year, error) {
	ys, err := svc.repo.QueryYears(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying years")
	}
	return ys, nil
}

func (svc *Service) UpdateYear(ctx context.Context, id string, ny NewYear) (Year, error) {
	if err := ny.Validate(svc.validate); err != nil {
		return Year{}, svc.invalid(err)
	}
	y, err := svc.repo.UpdateYear(ctx, Year{ID: id, Year: ny.Year})
	if err != nil {
		return Year{}, svc.fail(err, "updating year")
	}
	return y, nil
}

func (svc *Service) DeleteYear(ctx context.Context, id string) error {
	if err := svc.repo.DeleteYear(ctx, id); err != nil {
		return svc.fail(err, "deleting year")
	}
	return nil
}

// Semester

func (ns NewSemester) semester(id string) Semester {
	return Semester{ID: id, Year: Year{ID: ns.YearID}, Period: Period{ID: ns.PeriodID}}
}

func (svc *Service) CreateSemester(ctx context.Context, ns NewSemester) (Semester, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Semester{}, svc.invalid(err)
	}
	s, err := svc.repo.CreateSemester(ctx, ns.semester(""))
	if err != nil {
		return Semester{}, svc.fail(err, "creating semester")
	}
	return s, nil
}

func (svc *Service) GetSemester(ctx context.Context, id string) (Semester, error) {
	s, err := svc.repo.GetSemester(ctx, id)
	if err != nil {
		return Semester{}, svc.fail(err, "getting semester")
	}
	return s, nil
}

func (svc *Service) QuerySemesters(ctx context.Context) ([]Semester, error) {
	ss, err := svc.repo.QuerySemesters(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying semesters")
	}
	return ss, nil
}

func (svc *Service) UpdateSemester(ctx context.Context, id string, ns NewSemester) (Semester, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Semester{}, svc.invalid(err)
	}
	s, err := svc.repo.UpdateSemester(ctx, ns.semester(id))
	if err != nil {
		return Semester{}, svc.fail(err, "updating semester")
	}
	return s, nil
}

func (svc *Service) DeleteSemester(ctx context.Context, id string) error {
	if err := svc.repo.DeleteSemester(ctx, id); err != nil {
		return svc.fail(err, "deleting semester")
	}
	return nil
}

// Course

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, svc.invalid(err)
	}
	c, err := svc.repo.CreateCourse(ctx, Course{Number: nc.Number, Name: nc.Name})
	if err != nil {
		return Course{}, svc.fail(err, "creating course")
	}
	return c, nil
}

func (svc *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, svc.fail(err, "getting course")
	}
	return c, nil
}

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	cs, err := svc.repo.QueryCourses(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying courses")
	}
	return cs, nil
}

func (svc *Service) UpdateCourse(ctx context.Context, id string, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, svc.invalid(err)
	}
	c, err := svc.repo.UpdateCourse(ctx, Course{ID: id, Number: nc.Number, Name: nc.Name})
	if err != nil {
		return Course{}, svc.fail(err, "updating course")
	}
	return c, nil
}

func (svc *Service) DeleteCourse(ctx context.Context, id string) error {
	if err := svc.repo.DeleteCourse(ctx, id); err != nil {
		return svc.fail(err, "deleting course")
	}
	return nil
}

// Instructor

func (svc *Service) CreateInstructor(ctx context.Context, ni NewInstructor) (Instructor, error) {
	if err := ni.Validate(svc.validate); err != nil {
		return Instructor{}, svc.invalid(err)
	}
	i, err := svc.repo.CreateInstructor(ctx, Instructor{Person: ni.person()})
	if err != nil {
		return Instructor{}, svc.fail(err, "creating instructor")
	}
	return i, nil
}

func (svc *Service) GetInstructor(ctx context.Context, id string) (Instructor, error) {
	i, err := svc.repo.GetInstructor(ctx, id)
	if err != nil {
		return Instructor{}, svc.fail(err, "getting instructor")
	}
	return i, nil
}

func (svc *Service) QueryInstructors(ctx context.Context) ([]Instructor, error) {
	is, err := svc.repo.QueryInstructors(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying instructors")
	}
	return is, nil
}

func (svc *Service) UpdateInstructor(ctx context.Context, id string, ni NewInstructor) (Instructor, error) {
	if err := ni.Validate(svc.validate); err != nil {
		return Instructor{}, svc.invalid(err)
	}
	i, err := svc.repo.UpdateInstructor(ctx, Instructor{ID: id, Person: ni.person()})
	if err != nil {
		return Instructor{}, svc.fail(err, "updating instructor")
	}
	return i, nil
}

func (svc *Service) DeleteInstructor(ctx context.Context, id string) error {
	if err := svc.repo.DeleteInstructor(ctx, id); err != nil {
		return svc.fail(err, "deleting instructor")
	}
	return nil
}

// Student

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, svc.invalid(err)
	}
	s, err := svc.repo.CreateStudent(ctx, Student{Person: ns.person()})
	if err != nil {
		return Student{}, svc.fail(err, "creating student")
	}
	return s, nil
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, svc.fail(err, "getting student")
	}
	return s, nil
}

func (svc *Service) QueryStudents(ctx context.Context) ([]Student, error) {
	ss, err := svc.repo.QueryStudents(ctx)
	if err != nil {
		return nil, svc.fail(err, "querying students")
	}
	return ss, nil
}

func (svc *Service) UpdateStudent(ctx context.Context, id string, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, svc.invalid(err)
	}
	s, err := svc.repo.UpdateStudent(ctx, Student{ID: id, Person: ns.person()})
	if err != nil {
		return Student{}, svc.fail(err, "updating student")
	}
	return s, nil
}

func (svc *Service) DeleteStudent(ctx context.Context, id string) error {
	if err := svc.repo.DeleteStudent(ctx, id); err != nil {
		return svc.fail(err, "deleting student")
	}
	return nil
}

// Section

func (ns NewSection) section(id string) Section {
	return Section{
		ID:         id,
		Name:       ns.Name,
		Semester:   Semester{ID: ns.SemesterID},
		Course:     Course{ID: ns.CourseID},
		Instructor: Instructor{ID: ns.InstructorID},
	}
}

func (svc *Service) CreateSection(ctx context.Context, ns NewSection) (Section, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Section{}, svc.invalid(err)
	}
	s, err := svc.repo.CreateSection(ctx, ns.section(""))
	if err != nil {
		return Section{}, svc.fail(err, "creating section")
	}
	return s, nil
}

func (svc *Service) GetSection(ctx context.Context, id string) (Section, error) {
	s, err := svc.repo.GetSection(ctx, id)
	if err != nil {
		return Section{}, svc.fail(err, "getting section")
	}
	return s, nil
}

func (svc *Service) QuerySections(ctx context.Context, filter SectionFilter) ([]Section, error) {
	ss, err := svc.repo.QuerySections(ctx, filter)
	if err != nil {
		return nil, svc.fail(err, "querying sections")
	}
	return ss, nil
}

func (svc *Service) UpdateSection(ctx context.Context, id string, ns NewSection) (Section, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Section{}, svc.invalid(err)
	}
	s, err := svc.repo.UpdateSection(ctx, ns.section(id))
	if err != nil {
		return Section{}, svc.fail(err, "updating section")
	}
	return s, nil
}

func (svc *Service) DeleteSection(ctx context.Context, id string) error {
	if err := svc.repo.DeleteSection(ctx, id); err != nil {
		return svc.fail(err, "deleting section")
	}
	return nil
}

// Registration

func (nr NewRegistration) registration(id string) Registration {
	return Registration{ID: id, Student: Student{ID: nr.StudentID}, Section: Section{ID: nr.SectionID}}
}

func (svc *Service) CreateRegistration(ctx context.Context, nr NewRegistration) (Registration, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Registration{}, svc.invalid(err)
	}
	r, err := svc.repo.CreateRegistration(ctx, nr.registration(""))
	if err != nil {
		return Registration{}, svc.fail(err, "creating registration")
	}
	return r, nil
}

func (svc *Service) GetRegistration(ctx context.Context, id string) (Registration, error) {
	r, err := svc.repo.GetRegistration(ctx, id)
	if err != nil {
		return Registration{}, svc.fail(err, "getting registration")
	}
	return r, nil
}

func (svc *Service) QueryRegistrations(ctx context.Context, filter RegistrationFilter) ([]Registration, error) {
	rs, err := svc.repo.QueryRegistrations(ctx, filter)
	if err != nil {
		return nil, svc.fail(err, "querying registrations")
	}
	return rs, nil
}

func (svc *Service) UpdateRegistration(ctx context.Context, id string, nr NewRegistration) (Registration, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Registration{}, svc.invalid(err)
	}
	r, err := svc.repo.UpdateRegistration(ctx, nr.registration(id))
	if err != nil {
		return Registration{}, svc.fail(err, "updating registration")
	}
	return r, nil
}

func (svc *Service) DeleteRegistration(ctx context.Context, id string) error {
	if err := svc.repo.DeleteRegistration(ctx, id); err != nil {
		return svc.fail(err, "deleting registration")
	}
	return nil
}
