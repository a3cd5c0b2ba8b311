package courseinfo

import (
	"github.com/go-playground/validator/v10"

	"github.com/davalosk/ezu/core"
)

type NewPeriod struct {
	Sequence int    `json:"sequence" validate:"min=1"`
	Name     string `json:"name" validate:"required,max=45"`
}

func (np *NewPeriod) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	return validate.Struct(np)
}

type NewYear struct {
	Year int `json:"year" validate:"fourdigityear"`
}

func (ny *NewYear) Validate(validate *validator.Validate) error {
	return validate.Struct(ny)
}

type NewSemester struct {
	YearID   string `json:"year_id" validate:"required,uuid"`
	PeriodID string `json:"period_id" validate:"required,uuid"`
}

func (ns *NewSemester) Validate(validate *validator.Validate) error {
	ns.YearID = core.CleanString(ns.YearID)
	ns.PeriodID = core.CleanString(ns.PeriodID)
	return validate.Struct(ns)
}

type NewCourse struct {
	Number string `json:"number" validate:"required,max=20"`
	Name   string `json:"name" validate:"required,max=225"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Number = core.CleanString(nc.Number)
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

// NewPerson is the input shared by NewInstructor and NewStudent.
type NewPerson struct {
	UserID        string `json:"user_id" validate:"omitempty,uuid"`
	FirstName     string `json:"first_name" validate:"notblank,max=45"`
	LastName      string `json:"last_name" validate:"notblank,max=45"`
	Disambiguator string `json:"disambiguator" validate:"max=45"`
}

func (np *NewPerson) clean() {
	np.UserID = core.CleanString(np.UserID)
	np.FirstName = core.CleanString(np.FirstName)
	np.LastName = core.CleanString(np.LastName)
	np.Disambiguator = core.CleanString(np.Disambiguator)
}

func (np NewPerson) person() Person {
	p := Person{
		FirstName:     np.FirstName,
		LastName:      np.LastName,
		Disambiguator: np.Disambiguator,
	}
	if np.UserID != "" {
		p.UserID.SetValid(np.UserID)
	}
	return p
}

// NewInstructor is the instructor form. Names are trimmed before validation,
// so " Kevin " is accepted and stored as "Kevin".
type NewInstructor struct {
	NewPerson
}

func (ni *NewInstructor) Validate(validate *validator.Validate) error {
	ni.clean()
	return validate.Struct(ni)
}

type NewStudent struct {
	NewPerson
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.clean()
	return validate.Struct(ns)
}

type NewSection struct {
	Name         string `json:"name" validate:"required,max=10"`
	SemesterID   string `json:"semester_id" validate:"required,uuid"`
	CourseID     string `json:"course_id" validate:"required,uuid"`
	InstructorID string `json:"instructor_id" validate:"required,uuid"`
}

func (ns *NewSection) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.SemesterID = core.CleanString(ns.SemesterID)
	ns.CourseID = core.CleanString(ns.CourseID)
	ns.InstructorID = core.CleanString(ns.InstructorID)
	return validate.Struct(ns)
}

type NewRegistration struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	SectionID string `json:"section_id" validate:"required,uuid"`
}

func (nr *NewRegistration) Validate(validate *validator.Validate) error {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.SectionID = core.CleanString(nr.SectionID)
	return validate.Struct(nr)
}
