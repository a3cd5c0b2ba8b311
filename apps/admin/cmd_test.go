package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
	"github.com/davalosk/ezu/storage/database/inmem"
	"github.com/davalosk/ezu/testutil"
)

var (
	usrRepo user.Repository
	ciRepo  courseinfo.Repository
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	ciRepo = inmemdb.NewCourseInfoRepository(db)
	validate, translator := testutil.NewValidator()

	// start CLI
	out := new(bytes.Buffer)
	return &commandLine{
		usrSvc: user.NewService(usrRepo, validate, translator),
		ciSvc:  courseinfo.NewService(ciRepo, validate, translator, testutil.NewLogger(t)),
		out:    out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_adduser(t *testing.T) {
	cli, _ := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "awe", "awe@test.cd", "mdr-lol-123", true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "s3cure-enough"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "s3cure-enough"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "s3cure-enougher"}},
		{name: "adduser on existing user", args: []string{"adduser", "-username", "AWE"}, extra: extra{pwd: "an0ther-one!"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if err := refreshedUsr.CheckPassword(tt.extra.(extra).pwd); err != nil {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("create user", func(t *testing.T) {
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cure-enough"), nil }

		if err := cli.run([]string{"admin", "adduser", "-username", "New_User", "-email", "new@test.cd"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}
		usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{Username: "new_user"})
		if err != nil {
			t.Fatalf("GetUser() failed, %v", err)
		}
		if usr.Email != "new@test.cd" || usr.CheckPassword("s3cure-enough") != nil {
			t.Errorf("created user = %+v", usr)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("12345678"), nil }

		err := cli.run([]string{"admin", "adduser", "-username", "other"})
		if !core.IsValidationError(err) {
			t.Errorf("cli.run() error = %v, want a validation error", err)
		}
	})
}

type courseInfoTest struct {
	name    string
	args    []string // without program name
	wantOut string
	check   func(error) bool
}

func runCourseInfoTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []courseInfoTest) {
	t.Helper()

	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		out.Reset()

		// steps depend on the ones before them
		err := cli.run(args)
		if tt.check != nil {
			if !tt.check(err) {
				t.Errorf("%s: cli.run() unexpected error = %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: cli.run() unexpected error = %v", tt.name, err)
			continue
		}
		if !strings.Contains(out.String(), tt.wantOut) {
			t.Errorf("%s: cli.run() output = %q, want it to contain %q", tt.name, out.String(), tt.wantOut)
		}
	}
}

func isHelp(err error) bool { return err == errHelp }

func isNotFound(err error) bool { return err != nil && strings.HasSuffix(err.Error(), "not found") }

func isAmbiguous(err error) bool {
	return err != nil && strings.HasSuffix(err.Error(), "is ambiguous, use the ID")
}

func Test_commandLine_courseInfo(t *testing.T) {
	cli, out := setup(t)

	testutil.CreateUser(t, usrRepo, "jdoe", "jdoe@test.cd", "", true)

	runCourseInfoTests(t, cli, out, []courseInfoTest{
		{name: "addperiod: no args", args: []string{"addperiod"}, check: isHelp},
		{name: "addperiod: bad flag", args: []string{"addperiod", "-lol"}, check: isHelp},
		{name: "addperiod", args: []string{"addperiod", "-sequence", "1", "-name", " Spring "}, wantOut: "\tSpring\n"},
		{name: "addperiod: invalid sequence", args: []string{"addperiod", "-sequence", "-1", "-name", "Fall"}, check: core.IsValidationError},
		{name: "addperiod: duplicate name", args: []string{"addperiod", "-sequence", "2", "-name", "Spring"}, check: core.IsConstraintError},
		{name: "addyear", args: []string{"addyear", "-year", "2024"}, wantOut: "\t2024\n"},
		{name: "addyear: not four digits", args: []string{"addyear", "-year", "24"}, check: core.IsValidationError},
		{name: "addsemester: unknown year", args: []string{"addsemester", "-year", "2025", "-period", "Spring"}, check: isNotFound},
		{name: "addsemester: unknown period", args: []string{"addsemester", "-year", "2024", "-period", "Fall"}, check: isNotFound},
		{name: "addsemester", args: []string{"addsemester", "-year", "2024", "-period", "Spring"}, wantOut: "\t2024 - Spring\n"},
		{name: "addsemester: duplicate", args: []string{"addsemester", "-year", "2024", "-period", "Spring"}, check: core.IsConstraintError},
		{name: "addcourse", args: []string{"addcourse", "-number", "IS101", "-name", "Introduction to IS"}, wantOut: "\tIS101 - Introduction to IS\n"},
		{name: "addcourse: duplicate number", args: []string{"addcourse", "-number", "IS101", "-name", "Other"}, check: core.IsConstraintError},
		{name: "addinstructor: no last name", args: []string{"addinstructor", "-first", "John"}, check: isHelp},
		{name: "addinstructor: unknown user", args: []string{"addinstructor", "-first", "John", "-last", "Doe", "-user", "lol"}, check: func(err error) bool {
			return errors.Cause(err) == user.ErrNotFound
		}},
		{name: "addinstructor", args: []string{"addinstructor", "-first", " John ", "-last", "Doe ", "-user", "jdoe"}, wantOut: "\tDoe, John\n"},
		{name: "addinstructor: duplicate", args: []string{"addinstructor", "-first", "John", "-last", "Doe"}, check: core.IsConstraintError},
		{name: "addstudent", args: []string{"addstudent", "-first", "Alice", "-last", "Smith"}, wantOut: "\tSmith, Alice\n"},
		{name: "addsection: unknown instructor", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "001", "-instructor", "Doe, Jane"}, check: isNotFound},
		{name: "addsection", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "001", "-instructor", "Doe, John"}, wantOut: "\tIS101 - 001 (2024 - Spring)\n"},
		{name: "addsection: duplicate", args: []string{"addsection", "-course", "IS101 - Introduction to IS", "-semester", "2024 - Spring", "-name", "001", "-instructor", "Doe, John"}, check: core.IsConstraintError},
		{name: "register", args: []string{"register", "-student", "Smith, Alice", "-section", "IS101 - 001 (2024 - Spring)"}, wantOut: "\tIS101 - 001 (2024 - Spring) / Smith, Alice\n"},
		{name: "register: duplicate", args: []string{"register", "-student", "Smith, Alice", "-section", "IS101 - 001 (2024 - Spring)"}, check: core.IsConstraintError},
		{name: "register: unknown section", args: []string{"register", "-student", "Smith, Alice", "-section", "IS101 - 002 (2024 - Spring)"}, check: isNotFound},
		{name: "addsection: zero name", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "0", "-instructor", "Doe, John"}, wantOut: "\tIS101 - 0 (2024 - Spring)\n"},
		{name: "addcourse: zero number", args: []string{"addcourse", "-number", "0", "-name", "Zero"}, wantOut: "\t0 - Zero\n"},
		{name: "addyear: zero", args: []string{"addyear", "-year", "0"}, check: core.IsValidationError},
		{name: "addinstructor: disambiguated", args: []string{"addinstructor", "-first", "John", "-last", "Doe", "-disambiguator", "Jr."}, wantOut: "\tDoe, John\n"},
		{name: "addsection: ambiguous instructor", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "002", "-instructor", "Doe, John"}, check: isAmbiguous},
	})
}

func Test_commandLine_sameNames(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	fx := testutil.CreateFixtures(t, usrRepo, ciRepo)
	john2, err := ciRepo.CreateInstructor(ctx, courseinfo.Instructor{
		Person: courseinfo.Person{FirstName: "John", LastName: "Doe", Disambiguator: "2"},
	})
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	alice2, err := ciRepo.CreateStudent(ctx, courseinfo.Student{
		Person: courseinfo.Person{FirstName: "Alice", LastName: "Smith", Disambiguator: "2"},
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	runCourseInfoTests(t, cli, out, []courseInfoTest{
		{name: "instructor by name", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "002", "-instructor", "Doe, John"}, check: isAmbiguous},
		{name: "student by name", args: []string{"register", "-student", "Smith, Alice", "-section", fx.Section.ID}, check: isAmbiguous},
		{name: "instructor by ID", args: []string{"addsection", "-course", "IS101", "-semester", "2024 - Spring", "-name", "002", "-instructor", john2.ID}, wantOut: "\tIS101 - 002 (2024 - Spring)\n"},
		{name: "student by ID", args: []string{"register", "-student", alice2.ID, "-section", "IS101 - 002 (2024 - Spring)"}, wantOut: "\tIS101 - 002 (2024 - Spring) / Smith, Alice\n"},
	})

	sections, err := ciRepo.QuerySections(ctx, courseinfo.SectionFilter{InstructorID: john2.ID})
	if err != nil {
		t.Fatalf("QuerySections() failed: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "002" {
		t.Errorf("QuerySections() = %v, want section 002 taught by %s", sections, john2.ID)
	}
	regs, err := ciRepo.QueryRegistrations(ctx, courseinfo.RegistrationFilter{StudentID: alice2.ID})
	if err != nil {
		t.Fatalf("QueryRegistrations() failed: %v", err)
	}
	if len(regs) != 1 || regs[0].Section.Name != "002" {
		t.Errorf("QueryRegistrations() = %v, want one registration to section 002", regs)
	}
}

func Test_commandLine_list(t *testing.T) {
	cli, out := setup(t)

	fx := testutil.CreateFixtures(t, usrRepo, ciRepo)

	tests := []struct {
		entity  string
		wantOut string
	}{
		{entity: "periods", wantOut: fmt.Sprintf("%s\t%s\n", fx.Period.ID, fx.Period)},
		{entity: "year", wantOut: fmt.Sprintf("%s\t%s\n", fx.Year.ID, fx.Year)},
		{entity: "semesters", wantOut: fmt.Sprintf("%s\t%s\n", fx.Semester.ID, fx.Semester)},
		{entity: "courses", wantOut: fmt.Sprintf("%s\t%s\n", fx.Course.ID, fx.Course)},
		{entity: "instructors", wantOut: fmt.Sprintf("%s\t%s\n", fx.Instructor.ID, fx.Instructor)},
		{entity: "Students", wantOut: fmt.Sprintf("%s\t%s\n", fx.Student.ID, fx.Student)},
		{entity: "sections", wantOut: fmt.Sprintf("%s\t%s\n", fx.Section.ID, fx.Section)},
		{entity: "registrations", wantOut: fmt.Sprintf("%s\t%s\n", fx.Registration.ID, fx.Registration)},
		{entity: "users", wantOut: fmt.Sprintf("%s\t%s\n", fx.User.ID, fx.User)},
	}
	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			out.Reset()
			if err := cli.run([]string{"admin", "list", tt.entity}); err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			if got := out.String(); got != tt.wantOut {
				t.Errorf("cli.run() output = %q, want %q", got, tt.wantOut)
			}
		})
	}

	t.Run("unknown entity", func(t *testing.T) {
		if err := cli.run([]string{"admin", "list", "lol"}); err != errHelp {
			t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
		}
	})
}

func Test_commandLine_delete(t *testing.T) {
	cli, out := setup(t)

	fx := testutil.CreateFixtures(t, usrRepo, ciRepo)

	runCourseInfoTests(t, cli, out, []courseInfoTest{
		{name: "no id", args: []string{"delete", "period"}, check: isHelp},
		{name: "unknown entity", args: []string{"delete", "lol", fx.Period.ID}, check: isHelp},
		{name: "section in use", args: []string{"delete", "section", fx.Section.ID}, check: core.IsReferenceError},
		{name: "student in use", args: []string{"delete", "student", fx.Student.ID}, check: core.IsReferenceError},
		{name: "registration", args: []string{"delete", "registration", fx.Registration.ID}},
		{name: "registration not found", args: []string{"delete", "registration", fx.Registration.ID}, check: func(err error) bool {
			return errors.Cause(err) == courseinfo.ErrRegistrationNotFound
		}},
		{name: "section", args: []string{"delete", "section", fx.Section.ID}},
		{name: "semester", args: []string{"delete", "semester", fx.Semester.ID}},
		{name: "period", args: []string{"delete", "period", fx.Period.ID}},
		{name: "year", args: []string{"delete", "year", fx.Year.ID}},
		{name: "course", args: []string{"delete", "course", fx.Course.ID}},
		{name: "instructor", args: []string{"delete", "instructor", fx.Instructor.ID}},
		{name: "student", args: []string{"delete", "student", fx.Student.ID}},
		{name: "user", args: []string{"delete", "user", fx.User.ID}},
	})

	out.Reset()
	if err := cli.run([]string{"admin", "list", "periods"}); err != nil || out.Len() != 0 {
		t.Errorf("cli.run() output = %q, error = %v, want no periods left", out.String(), err)
	}
}
