package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zaptest"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
	"github.com/davalosk/ezu/services/logger"
)

func CreateUser(t *testing.T, repo user.Repository, uname, email, pwd string, isActive bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// NewValidator returns a validator with every custom tag of the app registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	courseinfo.InitValidators(validate, translator)
	return validate, translator
}

// NewLogger returns a logger writing to the test log. Rollbar stays disabled.
func NewLogger(t *testing.T) *logsvc.RollbarLogger {
	return logsvc.NewRollbarLogger(zaptest.NewLogger(t), &core.Config{Env: "TEST", Debug: true, TestMode: true})
}

// Fixtures is a small graph with one entity of each kind, all linked together.
type Fixtures struct {
	User         user.User
	Period       courseinfo.Period
	Year         courseinfo.Year
	Semester     courseinfo.Semester
	Course       courseinfo.Course
	Instructor   courseinfo.Instructor
	Student      courseinfo.Student
	Section      courseinfo.Section
	Registration courseinfo.Registration
}

// CreateFixtures stores: period Spring (1), year 2024, semester 2024 - Spring, course IS101,
// instructor John Doe, student Alice Smith, section 001 and Alice's registration to it.
func CreateFixtures(t *testing.T, usrRepo user.Repository, repo courseinfo.Repository) Fixtures {
	t.Helper()

	var (
		fx  Fixtures
		err error
		ctx = context.Background()
	)
	fail := func(what string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("creating %s fixture failed: %v", what, err)
		}
	}

	fx.User = CreateUser(t, usrRepo, "testuser", "testuser@test.cd", "password123", true)

	fx.Period, err = repo.CreatePeriod(ctx, courseinfo.Period{Sequence: 1, Name: "Spring"})
	fail("period", err)
	fx.Year, err = repo.CreateYear(ctx, courseinfo.Year{Year: 2024})
	fail("year", err)
	fx.Semester, err = repo.CreateSemester(ctx, courseinfo.Semester{Year: fx.Year, Period: fx.Period})
	fail("semester", err)
	fx.Course, err = repo.CreateCourse(ctx, courseinfo.Course{Number: "IS101", Name: "Introduction to IS"})
	fail("course", err)
	fx.Instructor, err = repo.CreateInstructor(ctx, courseinfo.Instructor{
		Person: courseinfo.Person{FirstName: "John", LastName: "Doe"},
	})
	fail("instructor", err)
	fx.Student, err = repo.CreateStudent(ctx, courseinfo.Student{
		Person: courseinfo.Person{FirstName: "Alice", LastName: "Smith"},
	})
	fail("student", err)
	fx.Section, err = repo.CreateSection(ctx, courseinfo.Section{
		Name:       "001",
		Semester:   fx.Semester,
		Course:     fx.Course,
		Instructor: fx.Instructor,
	})
	fail("section", err)
	fx.Registration, err = repo.CreateRegistration(ctx, courseinfo.Registration{Student: fx.Student, Section: fx.Section})
	fail("registration", err)

	return fx
}
