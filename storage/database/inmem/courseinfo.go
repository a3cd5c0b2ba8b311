package inmemdb

import (
	"context"
	"sort"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
)

type courseInfoRepository struct {
	db *DB
}

var _ courseinfo.Repository = (*courseInfoRepository)(nil) // interface compliance check

func NewCourseInfoRepository(db *DB) *courseInfoRepository {
	return &courseInfoRepository{db: db}
}

// loaders resolve the references of a row; callers hold the lock.

func (repo *courseInfoRepository) loadSemester(row semesterRow) courseinfo.Semester {
	return courseinfo.Semester{
		ID:     row.id,
		Year:   repo.db.years[row.yearID],
		Period: repo.db.periods[row.periodID],
	}
}

func (repo *courseInfoRepository) loadSection(row sectionRow) courseinfo.Section {
	return courseinfo.Section{
		ID:         row.id,
		Name:       row.name,
		Semester:   repo.loadSemester(repo.db.semesters[row.semesterID]),
		Course:     repo.db.courses[row.courseID],
		Instructor: repo.db.instructors[row.instructorID],
	}
}

func (repo *courseInfoRepository) loadRegistration(row registrationRow) courseinfo.Registration {
	return courseinfo.Registration{
		ID:      row.id,
		Student: repo.db.students[row.studentID],
		Section: repo.loadSection(repo.db.sections[row.sectionID]),
	}
}

// Period

func (repo *courseInfoRepository) checkPeriod(p courseinfo.Period) error {
	for _, other := range repo.db.periods {
		if other.ID == p.ID {
			continue
		}
		if other.Sequence == p.Sequence {
			return courseinfo.PeriodSequenceUnique.Err()
		}
		if other.Name == p.Name {
			return courseinfo.PeriodNameUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreatePeriod(ctx context.Context, p courseinfo.Period) (courseinfo.Period, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p.ID = ""
	if err := repo.checkPeriod(p); err != nil {
		return courseinfo.Period{}, err
	}
	p.ID = newID()
	repo.db.periods[p.ID] = p
	return p, nil
}

func (repo *courseInfoRepository) GetPeriod(ctx context.Context, id string) (courseinfo.Period, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if p, ok := repo.db.periods[id]; ok {
		return p, nil
	}
	return courseinfo.Period{}, courseinfo.ErrPeriodNotFound
}

func (repo *courseInfoRepository) QueryPeriods(ctx context.Context) ([]courseinfo.Period, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	periods := make([]courseinfo.Period, 0, len(repo.db.periods))
	for _, p := range repo.db.periods {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Sequence < periods[j].Sequence })
	return periods, nil
}

func (repo *courseInfoRepository) UpdatePeriod(ctx context.Context, p courseinfo.Period) (courseinfo.Period, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.periods[p.ID]; !ok {
		return courseinfo.Period{}, courseinfo.ErrPeriodNotFound
	}
	if err := repo.checkPeriod(p); err != nil {
		return courseinfo.Period{}, err
	}
	repo.db.periods[p.ID] = p
	return p, nil
}

func (repo *courseInfoRepository) DeletePeriod(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.periods[id]; !ok {
		return courseinfo.ErrPeriodNotFound
	}
	for _, s := range repo.db.semesters {
		if s.periodID == id {
			return core.NewInUseError(courseinfo.EntityPeriod, id)
		}
	}
	delete(repo.db.periods, id)
	return nil
}

// Year

func (repo *courseInfoRepository) checkYear(y courseinfo.Year) error {
	for _, other := range repo.db.years {
		if other.ID != y.ID && other.Year == y.Year {
			return courseinfo.YearUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateYear(ctx context.Context, y courseinfo.Year) (courseinfo.Year, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	y.ID = ""
	if err := repo.checkYear(y); err != nil {
		return courseinfo.Year{}, err
	}
	y.ID = newID()
	repo.db.years[y.ID] = y
	return y, nil
}

func (repo *courseInfoRepository) GetYear(ctx context.Context, id string) (courseinfo.Year, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if y, ok := repo.db.years[id]; ok {
		return y, nil
	}
	return courseinfo.Year{}, courseinfo.ErrYearNotFound
}

func (repo *courseInfoRepository) QueryYears(ctx context.Context) ([]courseinfo.Year, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	years := make([]courseinfo.Year, 0, len(repo.db.years))
	for _, y := range repo.db.years {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years, nil
}

func (repo *courseInfoRepository) UpdateYear(ctx context.Context, y courseinfo.Year) (courseinfo.Year, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.years[y.ID]; !ok {
		return courseinfo.Year{}, courseinfo.ErrYearNotFound
	}
	if err := repo.checkYear(y); err != nil {
		return courseinfo.Year{}, err
	}
	repo.db.years[y.ID] = y
	return y, nil
}

func (repo *courseInfoRepository) DeleteYear(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.years[id]; !ok {
		return courseinfo.ErrYearNotFound
	}
	for _, s := range repo.db.semesters {
		if s.yearID == id {
			return core.NewInUseError(courseinfo.EntityYear, id)
		}
	}
	delete(repo.db.years, id)
	return nil
}

// Semester

func (repo *courseInfoRepository) checkSemester(row semesterRow) error {
	if _, ok := repo.db.years[row.yearID]; !ok {
		return core.NewReferenceError(courseinfo.EntityYear, "year_id", row.yearID)
	}
	if _, ok := repo.db.periods[row.periodID]; !ok {
		return core.NewReferenceError(courseinfo.EntityPeriod, "period_id", row.periodID)
	}
	for _, other := range repo.db.semesters {
		if other.id != row.id && other.yearID == row.yearID && other.periodID == row.periodID {
			return courseinfo.SemesterUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateSemester(ctx context.Context, s courseinfo.Semester) (courseinfo.Semester, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row := semesterRow{yearID: s.Year.ID, periodID: s.Period.ID}
	if err := repo.checkSemester(row); err != nil {
		return courseinfo.Semester{}, err
	}
	row.id = newID()
	repo.db.semesters[row.id] = row
	return repo.loadSemester(row), nil
}

func (repo *courseInfoRepository) GetSemester(ctx context.Context, id string) (courseinfo.Semester, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.semesters[id]; ok {
		return repo.loadSemester(row), nil
	}
	return courseinfo.Semester{}, courseinfo.ErrSemesterNotFound
}

func (repo *courseInfoRepository) QuerySemesters(ctx context.Context) ([]courseinfo.Semester, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	semesters := make([]courseinfo.Semester, 0, len(repo.db.semesters))
	for _, row := range repo.db.semesters {
		semesters = append(semesters, repo.loadSemester(row))
	}
	sort.Slice(semesters, func(i, j int) bool { return semesterLess(semesters[i], semesters[j]) })
	return semesters, nil
}

func (repo *courseInfoRepository) UpdateSemester(ctx context.Context, s courseinfo.Semester) (courseinfo.Semester, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.semesters[s.ID]; !ok {
		return courseinfo.Semester{}, courseinfo.ErrSemesterNotFound
	}
	row := semesterRow{id: s.ID, yearID: s.Year.ID, periodID: s.Period.ID}
	if err := repo.checkSemester(row); err != nil {
		return courseinfo.Semester{}, err
	}
	repo.db.semesters[row.id] = row
	return repo.loadSemester(row), nil
}

func (repo *courseInfoRepository) DeleteSemester(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.semesters[id]; !ok {
		return courseinfo.ErrSemesterNotFound
	}
	for _, s := range repo.db.sections {
		if s.semesterID == id {
			return core.NewInUseError(courseinfo.EntitySemester, id)
		}
	}
	delete(repo.db.semesters, id)
	return nil
}

// Course

func (repo *courseInfoRepository) checkCourse(c courseinfo.Course) error {
	for _, other := range repo.db.courses {
		if other.ID != c.ID && other.Number == c.Number {
			return courseinfo.CourseNumberUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateCourse(ctx context.Context, c courseinfo.Course) (courseinfo.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c.ID = ""
	if err := repo.checkCourse(c); err != nil {
		return courseinfo.Course{}, err
	}
	c.ID = newID()
	repo.db.courses[c.ID] = c
	return c, nil
}

func (repo *courseInfoRepository) GetCourse(ctx context.Context, id string) (courseinfo.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return c, nil
	}
	return courseinfo.Course{}, courseinfo.ErrCourseNotFound
}

func (repo *courseInfoRepository) QueryCourses(ctx context.Context) ([]courseinfo.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]courseinfo.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courseLess(courses[i], courses[j]) })
	return courses, nil
}

func (repo *courseInfoRepository) UpdateCourse(ctx context.Context, c courseinfo.Course) (courseinfo.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.courses[c.ID]; !ok {
		return courseinfo.Course{}, courseinfo.ErrCourseNotFound
	}
	if err := repo.checkCourse(c); err != nil {
		return courseinfo.Course{}, err
	}
	repo.db.courses[c.ID] = c
	return c, nil
}

func (repo *courseInfoRepository) DeleteCourse(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return courseinfo.ErrCourseNotFound
	}
	for _, s := range repo.db.sections {
		if s.courseID == id {
			return core.NewInUseError(courseinfo.EntityCourse, id)
		}
	}
	delete(repo.db.courses, id)
	return nil
}

// Instructor & Student

func (repo *courseInfoRepository) checkUser(p courseinfo.Person) error {
	if !p.UserID.Valid {
		return nil
	}
	if _, ok := repo.db.users[p.UserID.String]; !ok {
		return core.NewReferenceError(courseinfo.EntityUser, "user_id", p.UserID.String)
	}
	return nil
}

func samePerson(a, b courseinfo.Person) bool {
	return a.FirstName == b.FirstName && a.LastName == b.LastName && a.Disambiguator == b.Disambiguator
}

func (repo *courseInfoRepository) checkInstructor(i courseinfo.Instructor) error {
	if err := repo.checkUser(i.Person); err != nil {
		return err
	}
	for _, other := range repo.db.instructors {
		if other.ID != i.ID && samePerson(other.Person, i.Person) {
			return courseinfo.InstructorUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateInstructor(ctx context.Context, i courseinfo.Instructor) (courseinfo.Instructor, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	i.ID = ""
	if err := repo.checkInstructor(i); err != nil {
		return courseinfo.Instructor{}, err
	}
	i.ID = newID()
	repo.db.instructors[i.ID] = i
	return i, nil
}

func (repo *courseInfoRepository) GetInstructor(ctx context.Context, id string) (courseinfo.Instructor, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if i, ok := repo.db.instructors[id]; ok {
		return i, nil
	}
	return courseinfo.Instructor{}, courseinfo.ErrInstructorNotFound
}

func (repo *courseInfoRepository) QueryInstructors(ctx context.Context) ([]courseinfo.Instructor, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	instructors := make([]courseinfo.Instructor, 0, len(repo.db.instructors))
	for _, i := range repo.db.instructors {
		instructors = append(instructors, i)
	}
	sort.Slice(instructors, func(i, j int) bool { return personLess(instructors[i].Person, instructors[j].Person) })
	return instructors, nil
}

func (repo *courseInfoRepository) UpdateInstructor(ctx context.Context, i courseinfo.Instructor) (courseinfo.Instructor, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.instructors[i.ID]; !ok {
		return courseinfo.Instructor{}, courseinfo.ErrInstructorNotFound
	}
	if err := repo.checkInstructor(i); err != nil {
		return courseinfo.Instructor{}, err
	}
	repo.db.instructors[i.ID] = i
	return i, nil
}

func (repo *courseInfoRepository) DeleteInstructor(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.instructors[id]; !ok {
		return courseinfo.ErrInstructorNotFound
	}
	for _, s := range repo.db.sections {
		if s.instructorID == id {
			return core.NewInUseError(courseinfo.EntityInstructor, id)
		}
	}
	delete(repo.db.instructors, id)
	return nil
}

func (repo *courseInfoRepository) checkStudent(s courseinfo.Student) error {
	if err := repo.checkUser(s.Person); err != nil {
		return err
	}
	for _, other := range repo.db.students {
		if other.ID != s.ID && samePerson(other.Person, s.Person) {
			return courseinfo.StudentUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateStudent(ctx context.Context, s courseinfo.Student) (courseinfo.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s.ID = ""
	if err := repo.checkStudent(s); err != nil {
		return courseinfo.Student{}, err
	}
	s.ID = newID()
	repo.db.students[s.ID] = s
	return s, nil
}

func (repo *courseInfoRepository) GetStudent(ctx context.Context, id string) (courseinfo.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return s, nil
	}
	return courseinfo.Student{}, courseinfo.ErrStudentNotFound
}

func (repo *courseInfoRepository) QueryStudents(ctx context.Context) ([]courseinfo.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]courseinfo.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return personLess(students[i].Person, students[j].Person) })
	return students, nil
}

func (repo *courseInfoRepository) UpdateStudent(ctx context.Context, s courseinfo.Student) (courseinfo.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[s.ID]; !ok {
		return courseinfo.Student{}, courseinfo.ErrStudentNotFound
	}
	if err := repo.checkStudent(s); err != nil {
		return courseinfo.Student{}, err
	}
	repo.db.students[s.ID] = s
	return s, nil
}

func (repo *courseInfoRepository) DeleteStudent(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return courseinfo.ErrStudentNotFound
	}
	for _, r := range repo.db.registrations {
		if r.studentID == id {
			return core.NewInUseError(courseinfo.EntityStudent, id)
		}
	}
	delete(repo.db.students, id)
	return nil
}

// Section

func (repo *courseInfoRepository) checkSection(row sectionRow) error {
	if _, ok := repo.db.semesters[row.semesterID]; !ok {
		return core.NewReferenceError(courseinfo.EntitySemester, "semester_id", row.semesterID)
	}
	if _, ok := repo.db.courses[row.courseID]; !ok {
		return core.NewReferenceError(courseinfo.EntityCourse, "course_id", row.courseID)
	}
	if _, ok := repo.db.instructors[row.instructorID]; !ok {
		return core.NewReferenceError(courseinfo.EntityInstructor, "instructor_id", row.instructorID)
	}
	for _, other := range repo.db.sections {
		if other.id != row.id &&
			other.semesterID == row.semesterID && other.courseID == row.courseID && other.name == row.name {
			return courseinfo.SectionUnique.Err()
		}
	}
	return nil
}

func sectionRowOf(s courseinfo.Section) sectionRow {
	return sectionRow{
		id:           s.ID,
		name:         s.Name,
		semesterID:   s.Semester.ID,
		courseID:     s.Course.ID,
		instructorID: s.Instructor.ID,
	}
}

func (repo *courseInfoRepository) CreateSection(ctx context.Context, s courseinfo.Section) (courseinfo.Section, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row := sectionRowOf(s)
	row.id = ""
	if err := repo.checkSection(row); err != nil {
		return courseinfo.Section{}, err
	}
	row.id = newID()
	repo.db.sections[row.id] = row
	return repo.loadSection(row), nil
}

func (repo *courseInfoRepository) GetSection(ctx context.Context, id string) (courseinfo.Section, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.sections[id]; ok {
		return repo.loadSection(row), nil
	}
	return courseinfo.Section{}, courseinfo.ErrSectionNotFound
}

func (repo *courseInfoRepository) QuerySections(ctx context.Context, filter courseinfo.SectionFilter) ([]courseinfo.Section, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	sections := make([]courseinfo.Section, 0)
	for _, row := range repo.db.sections {
		if (filter.SemesterID != "" && row.semesterID != filter.SemesterID) ||
			(filter.CourseID != "" && row.courseID != filter.CourseID) ||
			(filter.InstructorID != "" && row.instructorID != filter.InstructorID) {
			continue
		}
		sections = append(sections, repo.loadSection(row))
	}
	sort.Slice(sections, func(i, j int) bool { return sectionLess(sections[i], sections[j]) })
	return sections, nil
}

func (repo *courseInfoRepository) UpdateSection(ctx context.Context, s courseinfo.Section) (courseinfo.Section, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.sections[s.ID]; !ok {
		return courseinfo.Section{}, courseinfo.ErrSectionNotFound
	}
	row := sectionRowOf(s)
	if err := repo.checkSection(row); err != nil {
		return courseinfo.Section{}, err
	}
	repo.db.sections[row.id] = row
	return repo.loadSection(row), nil
}

func (repo *courseInfoRepository) DeleteSection(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.sections[id]; !ok {
		return courseinfo.ErrSectionNotFound
	}
	for _, r := range repo.db.registrations {
		if r.sectionID == id {
			return core.NewInUseError(courseinfo.EntitySection, id)
		}
	}
	delete(repo.db.sections, id)
	return nil
}

// Registration

func (repo *courseInfoRepository) checkRegistration(row registrationRow) error {
	if _, ok := repo.db.students[row.studentID]; !ok {
		return core.NewReferenceError(courseinfo.EntityStudent, "student_id", row.studentID)
	}
	if _, ok := repo.db.sections[row.sectionID]; !ok {
		return core.NewReferenceError(courseinfo.EntitySection, "section_id", row.sectionID)
	}
	for _, other := range repo.db.registrations {
		if other.id != row.id && other.studentID == row.studentID && other.sectionID == row.sectionID {
			return courseinfo.RegistrationUnique.Err()
		}
	}
	return nil
}

func (repo *courseInfoRepository) CreateRegistration(ctx context.Context, r courseinfo.Registration) (courseinfo.Registration, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row := registrationRow{studentID: r.Student.ID, sectionID: r.Section.ID}
	if err := repo.checkRegistration(row); err != nil {
		return courseinfo.Registration{}, err
	}
	row.id = newID()
	repo.db.registrations[row.id] = row
	return repo.loadRegistration(row), nil
}

func (repo *courseInfoRepository) GetRegistration(ctx context.Context, id string) (courseinfo.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.registrations[id]; ok {
		return repo.loadRegistration(row), nil
	}
	return courseinfo.Registration{}, courseinfo.ErrRegistrationNotFound
}

func (repo *courseInfoRepository) QueryRegistrations(ctx context.Context, filter courseinfo.RegistrationFilter) ([]courseinfo.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	registrations := make([]courseinfo.Registration, 0)
	for _, row := range repo.db.registrations {
		if (filter.StudentID != "" && row.studentID != filter.StudentID) ||
			(filter.SectionID != "" && row.sectionID != filter.SectionID) {
			continue
		}
		registrations = append(registrations, repo.loadRegistration(row))
	}
	sort.Slice(registrations, func(i, j int) bool {
		ri, rj := registrations[i], registrations[j]
		if ri.Section.ID != rj.Section.ID {
			return sectionLess(ri.Section, rj.Section)
		}
		return personLess(ri.Student.Person, rj.Student.Person)
	})
	return registrations, nil
}

func (repo *courseInfoRepository) UpdateRegistration(ctx context.Context, r courseinfo.Registration) (courseinfo.Registration, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.registrations[r.ID]; !ok {
		return courseinfo.Registration{}, courseinfo.ErrRegistrationNotFound
	}
	row := registrationRow{id: r.ID, studentID: r.Student.ID, sectionID: r.Section.ID}
	if err := repo.checkRegistration(row); err != nil {
		return courseinfo.Registration{}, err
	}
	repo.db.registrations[row.id] = row
	return repo.loadRegistration(row), nil
}

func (repo *courseInfoRepository) DeleteRegistration(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.registrations[id]; !ok {
		return courseinfo.ErrRegistrationNotFound
	}
	delete(repo.db.registrations, id)
	return nil
}
