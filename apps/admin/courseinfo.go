package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core/courseinfo"
)

// pick returns the index of the only one of n entities that ref names, either by ID or by
// one of its names. A ref naming several entities is an error, since display names may collide.
func pick(entity, ref string, n int, item func(i int) (id string, names []string)) (int, error) {
	found := -1
	for i := 0; i < n; i++ {
		id, names := item(i)
		if ref == id {
			return i, nil
		}
		for _, name := range names {
			if ref != name {
				continue
			}
			if found >= 0 && found != i {
				return -1, errors.Errorf("%s %q is ambiguous, use the ID", entity, ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, errors.Errorf("%s %q not found", entity, ref)
	}
	return found, nil
}

func (cli *commandLine) printEntity(id string, s fmt.Stringer) {
	fmt.Fprintf(cli.out, "%s\t%s\n", id, s)
}

func (cli *commandLine) findPeriod(ctx context.Context, ref string) (courseinfo.Period, error) {
	periods, err := cli.ciSvc.QueryPeriods(ctx)
	if err != nil {
		return courseinfo.Period{}, err
	}
	i, err := pick(courseinfo.EntityPeriod, ref, len(periods), func(i int) (string, []string) {
		return periods[i].ID, []string{periods[i].String()}
	})
	if err != nil {
		return courseinfo.Period{}, err
	}
	return periods[i], nil
}

func (cli *commandLine) findYear(ctx context.Context, ref string) (courseinfo.Year, error) {
	years, err := cli.ciSvc.QueryYears(ctx)
	if err != nil {
		return courseinfo.Year{}, err
	}
	i, err := pick(courseinfo.EntityYear, ref, len(years), func(i int) (string, []string) {
		return years[i].ID, []string{years[i].String()}
	})
	if err != nil {
		return courseinfo.Year{}, err
	}
	return years[i], nil
}

func (cli *commandLine) findSemester(ctx context.Context, ref string) (courseinfo.Semester, error) {
	semesters, err := cli.ciSvc.QuerySemesters(ctx)
	if err != nil {
		return courseinfo.Semester{}, err
	}
	i, err := pick(courseinfo.EntitySemester, ref, len(semesters), func(i int) (string, []string) {
		return semesters[i].ID, []string{semesters[i].String()}
	})
	if err != nil {
		return courseinfo.Semester{}, err
	}
	return semesters[i], nil
}

func (cli *commandLine) findCourse(ctx context.Context, ref string) (courseinfo.Course, error) {
	courses, err := cli.ciSvc.QueryCourses(ctx)
	if err != nil {
		return courseinfo.Course{}, err
	}
	// courses are also looked up by number alone
	i, err := pick(courseinfo.EntityCourse, ref, len(courses), func(i int) (string, []string) {
		return courses[i].ID, []string{courses[i].String(), courses[i].Number}
	})
	if err != nil {
		return courseinfo.Course{}, err
	}
	return courses[i], nil
}

func (cli *commandLine) findInstructor(ctx context.Context, ref string) (courseinfo.Instructor, error) {
	instructors, err := cli.ciSvc.QueryInstructors(ctx)
	if err != nil {
		return courseinfo.Instructor{}, err
	}
	i, err := pick(courseinfo.EntityInstructor, ref, len(instructors), func(i int) (string, []string) {
		return instructors[i].ID, []string{instructors[i].String()}
	})
	if err != nil {
		return courseinfo.Instructor{}, err
	}
	return instructors[i], nil
}

func (cli *commandLine) findStudent(ctx context.Context, ref string) (courseinfo.Student, error) {
	students, err := cli.ciSvc.QueryStudents(ctx)
	if err != nil {
		return courseinfo.Student{}, err
	}
	i, err := pick(courseinfo.EntityStudent, ref, len(students), func(i int) (string, []string) {
		return students[i].ID, []string{students[i].String()}
	})
	if err != nil {
		return courseinfo.Student{}, err
	}
	return students[i], nil
}

func (cli *commandLine) findSection(ctx context.Context, ref string) (courseinfo.Section, error) {
	sections, err := cli.ciSvc.QuerySections(ctx, courseinfo.SectionFilter{})
	if err != nil {
		return courseinfo.Section{}, err
	}
	i, err := pick(courseinfo.EntitySection, ref, len(sections), func(i int) (string, []string) {
		return sections[i].ID, []string{sections[i].String()}
	})
	if err != nil {
		return courseinfo.Section{}, err
	}
	return sections[i], nil
}

func (cli *commandLine) addPeriod(seq int, name string) error {
	p, err := cli.ciSvc.CreatePeriod(context.Background(), courseinfo.NewPeriod{Sequence: seq, Name: name})
	if err != nil {
		return err
	}
	cli.printEntity(p.ID, p)
	return nil
}

func (cli *commandLine) addYear(year int) error {
	y, err := cli.ciSvc.CreateYear(context.Background(), courseinfo.NewYear{Year: year})
	if err != nil {
		return err
	}
	cli.printEntity(y.ID, y)
	return nil
}

func (cli *commandLine) addSemester(yearRef, periodRef string) error {
	ctx := context.Background()
	y, err := cli.findYear(ctx, yearRef)
	if err != nil {
		return err
	}
	p, err := cli.findPeriod(ctx, periodRef)
	if err != nil {
		return err
	}
	s, err := cli.ciSvc.CreateSemester(ctx, courseinfo.NewSemester{YearID: y.ID, PeriodID: p.ID})
	if err != nil {
		return err
	}
	cli.printEntity(s.ID, s)
	return nil
}

func (cli *commandLine) addCourse(number, name string) error {
	c, err := cli.ciSvc.CreateCourse(context.Background(), courseinfo.NewCourse{Number: number, Name: name})
	if err != nil {
		return err
	}
	cli.printEntity(c.ID, c)
	return nil
}

func (cli *commandLine) newPerson(ctx context.Context, first, last, disamb, uname string) (courseinfo.NewPerson, error) {
	np := courseinfo.NewPerson{FirstName: first, LastName: last, Disambiguator: disamb}
	if uname != "" {
		usr, err := cli.usrSvc.GetByUsername(ctx, uname)
		if err != nil {
			return np, err
		}
		np.UserID = usr.ID
	}
	return np, nil
}

func (cli *commandLine) addInstructor(first, last, disamb, uname string) error {
	ctx := context.Background()
	np, err := cli.newPerson(ctx, first, last, disamb, uname)
	if err != nil {
		return err
	}
	i, err := cli.ciSvc.CreateInstructor(ctx, courseinfo.NewInstructor{NewPerson: np})
	if err != nil {
		return err
	}
	cli.printEntity(i.ID, i)
	return nil
}

func (cli *commandLine) addStudent(first, last, disamb, uname string) error {
	ctx := context.Background()
	np, err := cli.newPerson(ctx, first, last, disamb, uname)
	if err != nil {
		return err
	}
	s, err := cli.ciSvc.CreateStudent(ctx, courseinfo.NewStudent{NewPerson: np})
	if err != nil {
		return err
	}
	cli.printEntity(s.ID, s)
	return nil
}

func (cli *commandLine) addSection(courseRef, semesterRef, name, instructorRef string) error {
	ctx := context.Background()
	c, err := cli.findCourse(ctx, courseRef)
	if err != nil {
		return err
	}
	sem, err := cli.findSemester(ctx, semesterRef)
	if err != nil {
		return err
	}
	i, err := cli.findInstructor(ctx, instructorRef)
	if err != nil {
		return err
	}
	s, err := cli.ciSvc.CreateSection(ctx, courseinfo.NewSection{
		Name:         name,
		SemesterID:   sem.ID,
		CourseID:     c.ID,
		InstructorID: i.ID,
	})
	if err != nil {
		return err
	}
	cli.printEntity(s.ID, s)
	return nil
}

func (cli *commandLine) register(studentRef, sectionRef string) error {
	ctx := context.Background()
	st, err := cli.findStudent(ctx, studentRef)
	if err != nil {
		return err
	}
	sec, err := cli.findSection(ctx, sectionRef)
	if err != nil {
		return err
	}
	r, err := cli.ciSvc.CreateRegistration(ctx, courseinfo.NewRegistration{StudentID: st.ID, SectionID: sec.ID})
	if err != nil {
		return err
	}
	cli.printEntity(r.ID, r)
	return nil
}

func (cli *commandLine) list(entity string) error {
	ctx := context.Background()
	switch strings.TrimSuffix(strings.ToLower(entity), "s") {
	case courseinfo.EntityPeriod:
		ps, err := cli.ciSvc.QueryPeriods(ctx)
		for _, p := range ps {
			cli.printEntity(p.ID, p)
		}
		return err
	case courseinfo.EntityYear:
		ys, err := cli.ciSvc.QueryYears(ctx)
		for _, y := range ys {
			cli.printEntity(y.ID, y)
		}
		return err
	case courseinfo.EntitySemester:
		ss, err := cli.ciSvc.QuerySemesters(ctx)
		for _, s := range ss {
			cli.printEntity(s.ID, s)
		}
		return err
	case courseinfo.EntityCourse:
		cs, err := cli.ciSvc.QueryCourses(ctx)
		for _, c := range cs {
			cli.printEntity(c.ID, c)
		}
		return err
	case courseinfo.EntityInstructor:
		is, err := cli.ciSvc.QueryInstructors(ctx)
		for _, i := range is {
			cli.printEntity(i.ID, i)
		}
		return err
	case courseinfo.EntityStudent:
		ss, err := cli.ciSvc.QueryStudents(ctx)
		for _, s := range ss {
			cli.printEntity(s.ID, s)
		}
		return err
	case courseinfo.EntitySection:
		ss, err := cli.ciSvc.QuerySections(ctx, courseinfo.SectionFilter{})
		for _, s := range ss {
			cli.printEntity(s.ID, s)
		}
		return err
	case courseinfo.EntityRegistration:
		rs, err := cli.ciSvc.QueryRegistrations(ctx, courseinfo.RegistrationFilter{})
		for _, r := range rs {
			cli.printEntity(r.ID, r)
		}
		return err
	case courseinfo.EntityUser:
		us, err := cli.usrSvc.Query(ctx)
		for _, u := range us {
			cli.printEntity(u.ID, u)
		}
		return err
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) delete(entity, id string) error {
	ctx := context.Background()
	switch strings.TrimSuffix(strings.ToLower(entity), "s") {
	case courseinfo.EntityPeriod:
		return cli.ciSvc.DeletePeriod(ctx, id)
	case courseinfo.EntityYear:
		return cli.ciSvc.DeleteYear(ctx, id)
	case courseinfo.EntitySemester:
		return cli.ciSvc.DeleteSemester(ctx, id)
	case courseinfo.EntityCourse:
		return cli.ciSvc.DeleteCourse(ctx, id)
	case courseinfo.EntityInstructor:
		return cli.ciSvc.DeleteInstructor(ctx, id)
	case courseinfo.EntityStudent:
		return cli.ciSvc.DeleteStudent(ctx, id)
	case courseinfo.EntitySection:
		return cli.ciSvc.DeleteSection(ctx, id)
	case courseinfo.EntityRegistration:
		return cli.ciSvc.DeleteRegistration(ctx, id)
	case courseinfo.EntityUser:
		return cli.usrSvc.Delete(ctx, id)
	}
	cli.printUsage()
	return errHelp
}
