package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
)

type (
	// DB is an in-memory database. All tables share one lock, so constraint checks
	// and the write they guard happen atomically, across tables too.
	DB struct {
		mu sync.RWMutex

		users         map[string]user.User
		periods       map[string]courseinfo.Period
		years         map[string]courseinfo.Year
		semesters     map[string]semesterRow
		courses       map[string]courseinfo.Course
		instructors   map[string]courseinfo.Instructor
		students      map[string]courseinfo.Student
		sections      map[string]sectionRow
		registrations map[string]registrationRow
	}

	semesterRow struct {
		id       string
		yearID   string
		periodID string
	}

	sectionRow struct {
		id           string
		name         string
		semesterID   string
		courseID     string
		instructorID string
	}

	registrationRow struct {
		id        string
		studentID string
		sectionID string
	}
)

func Open() (*DB, error) {
	db := &DB{
		users:         make(map[string]user.User),
		periods:       make(map[string]courseinfo.Period),
		years:         make(map[string]courseinfo.Year),
		semesters:     make(map[string]semesterRow),
		courses:       make(map[string]courseinfo.Course),
		instructors:   make(map[string]courseinfo.Instructor),
		students:      make(map[string]courseinfo.Student),
		sections:      make(map[string]sectionRow),
		registrations: make(map[string]registrationRow),
	}
	return db, nil
}

func newID() string {
	return uuid.New().String()
}
