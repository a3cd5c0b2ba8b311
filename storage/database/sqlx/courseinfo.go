package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core/courseinfo"
)

type courseInfoRepository struct {
	db sqlx.ExtContext
}

var _ courseinfo.Repository = (*courseInfoRepository)(nil) // interface compliance check

func NewCourseInfoRepository(db sqlx.ExtContext) *courseInfoRepository {
	return &courseInfoRepository{db: db}
}

func (repo courseInfoRepository) get(ctx context.Context, dest interface{}, qs sq.SelectBuilder, notFound error, msg string) error {
	query, args, err := qs.Limit(1).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if err = sqlx.GetContext(ctx, repo.db, dest, query, args...); err != nil {
		return trapNoRowsErr(err, notFound, msg)
	}
	return nil
}

func (repo courseInfoRepository) selectAll(ctx context.Context, dest interface{}, qs sq.SelectBuilder, msg string) error {
	query, args, err := qs.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if err = sqlx.SelectContext(ctx, repo.db, dest, query, args...); err != nil {
		return errors.Wrap(err, msg)
	}
	return nil
}

func (repo courseInfoRepository) exec(ctx context.Context, stmt sq.Sqlizer) (sql.Result, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	return repo.db.ExecContext(ctx, query, args...)
}

func (repo courseInfoRepository) insert(ctx context.Context, table string, values map[string]interface{}, refs map[string]string) error {
	if _, err := repo.exec(ctx, psql.Insert(table).SetMap(values)); err != nil {
		return trapWriteErr(err, refs, "inserting "+table)
	}
	return nil
}

func (repo courseInfoRepository) update(ctx context.Context, table, id string, values map[string]interface{}, refs map[string]string, notFound error) error {
	if !isID(id) {
		return notFound
	}
	res, err := repo.exec(ctx, psql.Update(table).SetMap(values).Where(sq.Eq{"id": id}))
	if err != nil {
		return trapWriteErr(err, refs, "updating "+table)
	}
	return checkAffected(res, notFound)
}

func (repo courseInfoRepository) delete(ctx context.Context, table, id string, notFound error) error {
	if !isID(id) {
		return notFound
	}
	res, err := repo.exec(ctx, psql.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return trapDeleteErr(err, table, id, "deleting "+table)
	}
	return checkAffected(res, notFound)
}

// refIDs returns the foreign key values of a write, keyed by column. Values that are not
// UUIDs can reference nothing, they are reported before reaching the database.
func refIDs(kv ...string) (map[string]string, error) {
	refs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		col, id := kv[i], kv[i+1]
		refs[col] = id
		if !isID(id) {
			if fk, ok := fkeyByColumn[col]; ok {
				return nil, fk.err(id)
			}
		}
	}
	return refs, nil
}

// Period

func (repo courseInfoRepository) periodValues(p courseinfo.Period) map[string]interface{} {
	return map[string]interface{}{"sequence": p.Sequence, "name": p.Name}
}

func (repo courseInfoRepository) CreatePeriod(ctx context.Context, p courseinfo.Period) (courseinfo.Period, error) {
	p.ID = newID()
	values := repo.periodValues(p)
	values["id"] = p.ID
	if err := repo.insert(ctx, "period", values, nil); err != nil {
		return courseinfo.Period{}, err
	}
	return p, nil
}

func (repo courseInfoRepository) GetPeriod(ctx context.Context, id string) (courseinfo.Period, error) {
	if !isID(id) {
		return courseinfo.Period{}, courseinfo.ErrPeriodNotFound
	}
	var row periodRow
	if err := repo.get(ctx, &row, selectPeriods().Where(sq.Eq{"p.id": id}), courseinfo.ErrPeriodNotFound, "selecting period"); err != nil {
		return courseinfo.Period{}, err
	}
	return row.period(), nil
}

func (repo courseInfoRepository) QueryPeriods(ctx context.Context) ([]courseinfo.Period, error) {
	var rows []periodRow
	if err := repo.selectAll(ctx, &rows, selectPeriods().OrderBy(periodOrdering...), "selecting periods"); err != nil {
		return nil, err
	}
	periods := make([]courseinfo.Period, 0, len(rows))
	for _, row := range rows {
		periods = append(periods, row.period())
	}
	return periods, nil
}

func (repo courseInfoRepository) UpdatePeriod(ctx context.Context, p courseinfo.Period) (courseinfo.Period, error) {
	if err := repo.update(ctx, "period", p.ID, repo.periodValues(p), nil, courseinfo.ErrPeriodNotFound); err != nil {
		return courseinfo.Period{}, err
	}
	return p, nil
}

func (repo courseInfoRepository) DeletePeriod(ctx context.Context, id string) error {
	return repo.delete(ctx, "period", id, courseinfo.ErrPeriodNotFound)
}

// Year

func (repo courseInfoRepository) CreateYear(ctx context.Context, y courseinfo.Year) (courseinfo.Year, error) {
	y.ID = newID()
	if err := repo.insert(ctx, "year", map[string]interface{}{"id": y.ID, "year": y.Year}, nil); err != nil {
		return courseinfo.Year{}, err
	}
	return y, nil
}

func (repo courseInfoRepository) GetYear(ctx context.Context, id string) (courseinfo.Year, error) {
	if !isID(id) {
		return courseinfo.Year{}, courseinfo.ErrYearNotFound
	}
	var row yearRow
	if err := repo.get(ctx, &row, selectYears().Where(sq.Eq{"y.id": id}), courseinfo.ErrYearNotFound, "selecting year"); err != nil {
		return courseinfo.Year{}, err
	}
	return row.year(), nil
}

func (repo courseInfoRepository) QueryYears(ctx context.Context) ([]courseinfo.Year, error) {
	var rows []yearRow
	if err := repo.selectAll(ctx, &rows, selectYears().OrderBy(yearOrdering...), "selecting years"); err != nil {
		return nil, err
	}
	years := make([]courseinfo.Year, 0, len(rows))
	for _, row := range rows {
		years = append(years, row.year())
	}
	return years, nil
}

func (repo courseInfoRepository) UpdateYear(ctx context.Context, y courseinfo.Year) (courseinfo.Year, error) {
	if err := repo.update(ctx, "year", y.ID, map[string]interface{}{"year": y.Year}, nil, courseinfo.ErrYearNotFound); err != nil {
		return courseinfo.Year{}, err
	}
	return y, nil
}

func (repo courseInfoRepository) DeleteYear(ctx context.Context, id string) error {
	return repo.delete(ctx, "year", id, courseinfo.ErrYearNotFound)
}

// Semester

func (repo courseInfoRepository) semesterValues(s courseinfo.Semester) (map[string]interface{}, map[string]string, error) {
	refs, err := refIDs("year_id", s.Year.ID, "period_id", s.Period.ID)
	if err != nil {
		return nil, nil, err
	}
	return map[string]interface{}{"year_id": s.Year.ID, "period_id": s.Period.ID}, refs, nil
}

func (repo courseInfoRepository) CreateSemester(ctx context.Context, s courseinfo.Semester) (courseinfo.Semester, error) {
	values, refs, err := repo.semesterValues(s)
	if err != nil {
		return courseinfo.Semester{}, err
	}
	id := newID()
	values["id"] = id
	if err = repo.insert(ctx, "semester", values, refs); err != nil {
		return courseinfo.Semester{}, err
	}
	return repo.GetSemester(ctx, id)
}

func (repo courseInfoRepository) GetSemester(ctx context.Context, id string) (courseinfo.Semester, error) {
	if !isID(id) {
		return courseinfo.Semester{}, courseinfo.ErrSemesterNotFound
	}
	var row semesterRow
	if err := repo.get(ctx, &row, selectSemesters().Where(sq.Eq{"sm.id": id}), courseinfo.ErrSemesterNotFound, "selecting semester"); err != nil {
		return courseinfo.Semester{}, err
	}
	return row.semester(), nil
}

func (repo courseInfoRepository) QuerySemesters(ctx context.Context) ([]courseinfo.Semester, error) {
	var rows []semesterRow
	if err := repo.selectAll(ctx, &rows, selectSemesters().OrderBy(semesterOrdering...), "selecting semesters"); err != nil {
		return nil, err
	}
	semesters := make([]courseinfo.Semester, 0, len(rows))
	for _, row := range rows {
		semesters = append(semesters, row.semester())
	}
	return semesters, nil
}

func (repo courseInfoRepository) UpdateSemester(ctx context.Context, s courseinfo.Semester) (courseinfo.Semester, error) {
	values, refs, err := repo.semesterValues(s)
	if err != nil {
		return courseinfo.Semester{}, err
	}
	if err = repo.update(ctx, "semester", s.ID, values, refs, courseinfo.ErrSemesterNotFound); err != nil {
		return courseinfo.Semester{}, err
	}
	return repo.GetSemester(ctx, s.ID)
}

func (repo courseInfoRepository) DeleteSemester(ctx context.Context, id string) error {
	return repo.delete(ctx, "semester", id, courseinfo.ErrSemesterNotFound)
}

// Course

func (repo courseInfoRepository) CreateCourse(ctx context.Context, c courseinfo.Course) (courseinfo.Course, error) {
	c.ID = newID()
	if err := repo.insert(ctx, "course", map[string]interface{}{"id": c.ID, "number": c.Number, "name": c.Name}, nil); err != nil {
		return courseinfo.Course{}, err
	}
	return c, nil
}

func (repo courseInfoRepository) GetCourse(ctx context.Context, id string) (courseinfo.Course, error) {
	if !isID(id) {
		return courseinfo.Course{}, courseinfo.ErrCourseNotFound
	}
	var row courseRow
	if err := repo.get(ctx, &row, selectCourses().Where(sq.Eq{"c.id": id}), courseinfo.ErrCourseNotFound, "selecting course"); err != nil {
		return courseinfo.Course{}, err
	}
	return row.course(), nil
}

func (repo courseInfoRepository) QueryCourses(ctx context.Context) ([]courseinfo.Course, error) {
	var rows []courseRow
	if err := repo.selectAll(ctx, &rows, selectCourses().OrderBy(courseOrdering...), "selecting courses"); err != nil {
		return nil, err
	}
	courses := make([]courseinfo.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.course())
	}
	return courses, nil
}

func (repo courseInfoRepository) UpdateCourse(ctx context.Context, c courseinfo.Course) (courseinfo.Course, error) {
	values := map[string]interface{}{"number": c.Number, "name": c.Name}
	if err := repo.update(ctx, "course", c.ID, values, nil, courseinfo.ErrCourseNotFound); err != nil {
		return courseinfo.Course{}, err
	}
	return c, nil
}

func (repo courseInfoRepository) DeleteCourse(ctx context.Context, id string) error {
	return repo.delete(ctx, "course", id, courseinfo.ErrCourseNotFound)
}

// Instructor & Student

func (repo courseInfoRepository) personValues(p courseinfo.Person) (map[string]interface{}, map[string]string, error) {
	var refs map[string]string
	if p.UserID.Valid {
		var err error
		if refs, err = refIDs("user_id", p.UserID.String); err != nil {
			return nil, nil, err
		}
	}
	values := map[string]interface{}{
		"user_id":       p.UserID,
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"disambiguator": p.Disambiguator,
	}
	return values, refs, nil
}

func (repo courseInfoRepository) CreateInstructor(ctx context.Context, i courseinfo.Instructor) (courseinfo.Instructor, error) {
	values, refs, err := repo.personValues(i.Person)
	if err != nil {
		return courseinfo.Instructor{}, err
	}
	i.ID = newID()
	values["id"] = i.ID
	if err = repo.insert(ctx, "instructor", values, refs); err != nil {
		return courseinfo.Instructor{}, err
	}
	return i, nil
}

func (repo courseInfoRepository) GetInstructor(ctx context.Context, id string) (courseinfo.Instructor, error) {
	if !isID(id) {
		return courseinfo.Instructor{}, courseinfo.ErrInstructorNotFound
	}
	var row instructorRow
	if err := repo.get(ctx, &row, selectInstructors().Where(sq.Eq{"i.id": id}), courseinfo.ErrInstructorNotFound, "selecting instructor"); err != nil {
		return courseinfo.Instructor{}, err
	}
	return row.instructor(), nil
}

func (repo courseInfoRepository) QueryInstructors(ctx context.Context) ([]courseinfo.Instructor, error) {
	var rows []instructorRow
	if err := repo.selectAll(ctx, &rows, selectInstructors().OrderBy(instructorOrdering...), "selecting instructors"); err != nil {
		return nil, err
	}
	instructors := make([]courseinfo.Instructor, 0, len(rows))
	for _, row := range rows {
		instructors = append(instructors, row.instructor())
	}
	return instructors, nil
}

func (repo courseInfoRepository) UpdateInstructor(ctx context.Context, i courseinfo.Instructor) (courseinfo.Instructor, error) {
	values, refs, err := repo.personValues(i.Person)
	if err != nil {
		return courseinfo.Instructor{}, err
	}
	if err = repo.update(ctx, "instructor", i.ID, values, refs, courseinfo.ErrInstructorNotFound); err != nil {
		return courseinfo.Instructor{}, err
	}
	return i, nil
}

func (repo courseInfoRepository) DeleteInstructor(ctx context.Context, id string) error {
	return repo.delete(ctx, "instructor", id, courseinfo.ErrInstructorNotFound)
}

func (repo courseInfoRepository) CreateStudent(ctx context.Context, s courseinfo.Student) (courseinfo.Student, error) {
	values, refs, err := repo.personValues(s.Person)
	if err != nil {
		return courseinfo.Student{}, err
	}
	s.ID = newID()
	values["id"] = s.ID
	if err = repo.insert(ctx, "student", values, refs); err != nil {
		return courseinfo.Student{}, err
	}
	return s, nil
}

func (repo courseInfoRepository) GetStudent(ctx context.Context, id string) (courseinfo.Student, error) {
	if !isID(id) {
		return courseinfo.Student{}, courseinfo.ErrStudentNotFound
	}
	var row studentRow
	if err := repo.get(ctx, &row, selectStudents().Where(sq.Eq{"st.id": id}), courseinfo.ErrStudentNotFound, "selecting student"); err != nil {
		return courseinfo.Student{}, err
	}
	return row.student(), nil
}

func (repo courseInfoRepository) QueryStudents(ctx context.Context) ([]courseinfo.Student, error) {
	var rows []studentRow
	if err := repo.selectAll(ctx, &rows, selectStudents().OrderBy(studentOrdering...), "selecting students"); err != nil {
		return nil, err
	}
	students := make([]courseinfo.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.student())
	}
	return students, nil
}

func (repo courseInfoRepository) UpdateStudent(ctx context.Context, s courseinfo.Student) (courseinfo.Student, error) {
	values, refs, err := repo.personValues(s.Person)
	if err != nil {
		return courseinfo.Student{}, err
	}
	if err = repo.update(ctx, "student", s.ID, values, refs, courseinfo.ErrStudentNotFound); err != nil {
		return courseinfo.Student{}, err
	}
	return s, nil
}

func (repo courseInfoRepository) DeleteStudent(ctx context.Context, id string) error {
	return repo.delete(ctx, "student", id, courseinfo.ErrStudentNotFound)
}

// Section

func (repo courseInfoRepository) sectionValues(s courseinfo.Section) (map[string]interface{}, map[string]string, error) {
	refs, err := refIDs(
		"semester_id", s.Semester.ID,
		"course_id", s.Course.ID,
		"instructor_id", s.Instructor.ID,
	)
	if err != nil {
		return nil, nil, err
	}
	values := map[string]interface{}{
		"name":          s.Name,
		"semester_id":   s.Semester.ID,
		"course_id":     s.Course.ID,
		"instructor_id": s.Instructor.ID,
	}
	return values, refs, nil
}

func (repo courseInfoRepository) CreateSection(ctx context.Context, s courseinfo.Section) (courseinfo.Section, error) {
	values, refs, err := repo.sectionValues(s)
	if err != nil {
		return courseinfo.Section{}, err
	}
	id := newID()
	values["id"] = id
	if err = repo.insert(ctx, "section", values, refs); err != nil {
		return courseinfo.Section{}, err
	}
	return repo.GetSection(ctx, id)
}

func (repo courseInfoRepository) GetSection(ctx context.Context, id string) (courseinfo.Section, error) {
	if !isID(id) {
		return courseinfo.Section{}, courseinfo.ErrSectionNotFound
	}
	var row sectionRow
	if err := repo.get(ctx, &row, selectSections().Where(sq.Eq{"sc.id": id}), courseinfo.ErrSectionNotFound, "selecting section"); err != nil {
		return courseinfo.Section{}, err
	}
	return row.section(), nil
}

func (repo courseInfoRepository) QuerySections(ctx context.Context, filter courseinfo.SectionFilter) ([]courseinfo.Section, error) {
	qs := selectSections()
	for col, id := range map[string]string{
		"sc.semester_id":   filter.SemesterID,
		"sc.course_id":     filter.CourseID,
		"sc.instructor_id": filter.InstructorID,
	} {
		if id == "" {
			continue
		}
		if !isID(id) {
			return []courseinfo.Section{}, nil
		}
		qs = qs.Where(sq.Eq{col: id})
	}

	var rows []sectionRow
	if err := repo.selectAll(ctx, &rows, qs.OrderBy(sectionOrdering...), "selecting sections"); err != nil {
		return nil, err
	}
	sections := make([]courseinfo.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, row.section())
	}
	return sections, nil
}

func (repo courseInfoRepository) UpdateSection(ctx context.Context, s courseinfo.Section) (courseinfo.Section, error) {
	values, refs, err := repo.sectionValues(s)
	if err != nil {
		return courseinfo.Section{}, err
	}
	if err = repo.update(ctx, "section", s.ID, values, refs, courseinfo.ErrSectionNotFound); err != nil {
		return courseinfo.Section{}, err
	}
	return repo.GetSection(ctx, s.ID)
}

func (repo courseInfoRepository) DeleteSection(ctx context.Context, id string) error {
	return repo.delete(ctx, "section", id, courseinfo.ErrSectionNotFound)
}

// Registration

func (repo courseInfoRepository) registrationValues(r courseinfo.Registration) (map[string]interface{}, map[string]string, error) {
	refs, err := refIDs("student_id", r.Student.ID, "section_id", r.Section.ID)
	if err != nil {
		return nil, nil, err
	}
	return map[string]interface{}{"student_id": r.Student.ID, "section_id": r.Section.ID}, refs, nil
}

func (repo courseInfoRepository) CreateRegistration(ctx context.Context, r courseinfo.Registration) (courseinfo.Registration, error) {
	values, refs, err := repo.registrationValues(r)
	if err != nil {
		return courseinfo.Registration{}, err
	}
	id := newID()
	values["id"] = id
	if err = repo.insert(ctx, "registration", values, refs); err != nil {
		return courseinfo.Registration{}, err
	}
	return repo.GetRegistration(ctx, id)
}

func (repo courseInfoRepository) GetRegistration(ctx context.Context, id string) (courseinfo.Registration, error) {
	if !isID(id) {
		return courseinfo.Registration{}, courseinfo.ErrRegistrationNotFound
	}
	var row registrationRow
	if err := repo.get(ctx, &row, selectRegistrations().Where(sq.Eq{"r.id": id}), courseinfo.ErrRegistrationNotFound, "selecting registration"); err != nil {
		return courseinfo.Registration{}, err
	}
	return row.registration(), nil
}

func (repo courseInfoRepository) QueryRegistrations(ctx context.Context, filter courseinfo.RegistrationFilter) ([]courseinfo.Registration, error) {
	qs := selectRegistrations()
	for col, id := range map[string]string{
		"r.student_id": filter.StudentID,
		"r.section_id": filter.SectionID,
	} {
		if id == "" {
			continue
		}
		if !isID(id) {
			return []courseinfo.Registration{}, nil
		}
		qs = qs.Where(sq.Eq{col: id})
	}

	var rows []registrationRow
	if err := repo.selectAll(ctx, &rows, qs.OrderBy(registrationOrdering...), "selecting registrations"); err != nil {
		return nil, err
	}
	registrations := make([]courseinfo.Registration, 0, len(rows))
	for _, row := range rows {
		registrations = append(registrations, row.registration())
	}
	return registrations, nil
}

func (repo courseInfoRepository) UpdateRegistration(ctx context.Context, r courseinfo.Registration) (courseinfo.Registration, error) {
	values, refs, err := repo.registrationValues(r)
	if err != nil {
		return courseinfo.Registration{}, err
	}
	if err = repo.update(ctx, "registration", r.ID, values, refs, courseinfo.ErrRegistrationNotFound); err != nil {
		return courseinfo.Registration{}, err
	}
	return repo.GetRegistration(ctx, r.ID)
}

func (repo courseInfoRepository) DeleteRegistration(ctx context.Context, id string) error {
	return repo.delete(ctx, "registration", id, courseinfo.ErrRegistrationNotFound)
}
