package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sql.DB
	usrSvc *user.Service
	ciSvc  *courseinfo.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                                   - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME [-email EMAIL]                - create a user, or reset its password")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME|EMAIL                   - reset a user's password")
	fmt.Fprintln(cli.out, "  addperiod -sequence N -name NAME                         - add a period")
	fmt.Fprintln(cli.out, "  addyear -year YYYY                                       - add a year")
	fmt.Fprintln(cli.out, "  addsemester -year YYYY -period NAME                      - add a semester")
	fmt.Fprintln(cli.out, "  addcourse -number NUMBER -name NAME                      - add a course")
	fmt.Fprintln(cli.out, "  addinstructor -first F -last L [-disambiguator D] [-user USERNAME]")
	fmt.Fprintln(cli.out, "  addstudent -first F -last L [-disambiguator D] [-user USERNAME]")
	fmt.Fprintln(cli.out, "  addsection -course NUMBER -semester SEMESTER -name NAME -instructor INSTRUCTOR")
	fmt.Fprintln(cli.out, "  register -student STUDENT -section SECTION               - register a student to a section")
	fmt.Fprintln(cli.out, "  list ENTITY                                              - list periods, years, semesters, courses,")
	fmt.Fprintln(cli.out, "                                                             instructors, students, sections or registrations")
	fmt.Fprintln(cli.out, "  delete ENTITY ID                                         - delete an entity")
	fmt.Fprintln(cli.out, "Entities can be referred to by ID or by their displayed name, eg. \"2024 - Spring\" or \"Doe, John\".")
}

// parse parses args into fs. Required flags that were not set print the usage and return errHelp.
func (cli *commandLine) parse(fs *flag.FlagSet, args []string, required ...string) error {
	fs.SetOutput(cli.out)
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for _, name := range required {
		if !set[name] {
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

func (cli *commandLine) readPassword(fs *flag.FlagSet) (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		fs.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd, args := args[1], args[2:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)

	switch cmd {
	case "migrate":
		if len(args) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args)

	case "adduser", "resetpassword":
		uname := fs.String("username", "", "The user's username (or email for resetpassword). The password will be prompted next.")
		email := fs.String("email", "", "The user's email.")
		if err := cli.parse(fs, args, "username"); err != nil {
			return err
		}
		pwd, err := cli.readPassword(fs)
		if err != nil {
			return err
		}
		if cmd == "resetpassword" {
			return cli.resetPassword(*uname, pwd)
		}
		return cli.addUser(*uname, *email, pwd)

	case "addperiod":
		seq := fs.Int("sequence", 0, "Position of the period in the academic year.")
		name := fs.String("name", "", "Name of the period, eg. Spring.")
		if err := cli.parse(fs, args, "name"); err != nil {
			return err
		}
		return cli.addPeriod(*seq, *name)

	case "addyear":
		year := fs.Int("year", 0, "Four digit year.")
		if err := cli.parse(fs, args, "year"); err != nil {
			return err
		}
		return cli.addYear(*year)

	case "addsemester":
		year := fs.Int("year", 0, "Four digit year.")
		period := fs.String("period", "", "Period name or ID.")
		if err := cli.parse(fs, args, "year", "period"); err != nil {
			return err
		}
		return cli.addSemester(strconv.Itoa(*year), *period)

	case "addcourse":
		number := fs.String("number", "", "Course number, eg. IS101.")
		name := fs.String("name", "", "Course name.")
		if err := cli.parse(fs, args, "number", "name"); err != nil {
			return err
		}
		return cli.addCourse(*number, *name)

	case "addinstructor", "addstudent":
		first := fs.String("first", "", "First name.")
		last := fs.String("last", "", "Last name.")
		disamb := fs.String("disambiguator", "", "Tells apart people with the same names.")
		uname := fs.String("user", "", "Username of the linked user account.")
		if err := cli.parse(fs, args, "first", "last"); err != nil {
			return err
		}
		if cmd == "addinstructor" {
			return cli.addInstructor(*first, *last, *disamb, *uname)
		}
		return cli.addStudent(*first, *last, *disamb, *uname)

	case "addsection":
		course := fs.String("course", "", "Course number or ID.")
		semester := fs.String("semester", "", "Semester, eg. \"2024 - Spring\", or ID.")
		name := fs.String("name", "", "Section name, eg. 001.")
		instructor := fs.String("instructor", "", "Instructor, eg. \"Doe, John\", or ID.")
		if err := cli.parse(fs, args, "course", "semester", "name", "instructor"); err != nil {
			return err
		}
		return cli.addSection(*course, *semester, *name, *instructor)

	case "register":
		student := fs.String("student", "", "Student, eg. \"Smith, Alice\", or ID.")
		section := fs.String("section", "", "Section, eg. \"IS101 - 001 (2024 - Spring)\", or ID.")
		if err := cli.parse(fs, args, "student", "section"); err != nil {
			return err
		}
		return cli.register(*student, *section)

	case "list":
		if len(args) != 1 {
			cli.printUsage()
			return errHelp
		}
		return cli.list(args[0])

	case "delete":
		if len(args) != 2 {
			cli.printUsage()
			return errHelp
		}
		return cli.delete(args[0], args[1])

	default:
		cli.printUsage()
		return errHelp
	}
}
