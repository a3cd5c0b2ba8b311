package courseinfo

import (
	"fmt"
	"strconv"

	"github.com/volatiletech/null/v8"
)

// Period is a recurring named slot of the academic calendar (eg. Spring, Fall).
type Period struct {
	ID       string `json:"id"`
	Sequence int    `json:"sequence"`
	Name     string `json:"name"`
}

func (p Period) String() string {
	return p.Name
}

// Year is a four digit academic year.
type Year struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
}

func (y Year) String() string {
	return strconv.Itoa(y.Year)
}

// Semester pairs a Year and a Period.
type Semester struct {
	ID     string `json:"id"`
	Year   Year   `json:"year"`
	Period Period `json:"period"`
}

func (s Semester) String() string {
	return fmt.Sprintf("%s - %s", s.Year, s.Period)
}

type Course struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

func (c Course) String() string {
	return fmt.Sprintf("%s - %s", c.Number, c.Name)
}

// Person holds the fields shared by instructors and students.
// Disambiguator tells apart two people with the same first and last names.
type Person struct {
	UserID        null.String `json:"user_id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Disambiguator string      `json:"disambiguator"`
}

func (p Person) String() string {
	return fmt.Sprintf("%s, %s", p.LastName, p.FirstName)
}

type Instructor struct {
	ID string `json:"id"`
	Person
}

type Student struct {
	ID string `json:"id"`
	Person
}

// Section is one offering of a Course in a Semester.
type Section struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Semester   Semester   `json:"semester"`
	Course     Course     `json:"course"`
	Instructor Instructor `json:"instructor"`
}

func (s Section) String() string {
	return fmt.Sprintf("%s - %s (%s)", s.Course.Number, s.Name, s.Semester)
}

// Registration enrolls a Student in a Section.
type Registration struct {
	ID      string  `json:"id"`
	Student Student `json:"student"`
	Section Section `json:"section"`
}

func (r Registration) String() string {
	return fmt.Sprintf("%s / %s", r.Section, r.Student)
}

type SectionFilter struct {
	SemesterID   string
	CourseID     string
	InstructorID string
}

type RegistrationFilter struct {
	StudentID string
	SectionID string
}
