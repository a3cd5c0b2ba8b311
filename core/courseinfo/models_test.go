package courseinfo

import (
	"fmt"
	"testing"
)

func TestString(t *testing.T) {
	period := Period{ID: "1", Sequence: 1, Name: "Spring"}
	year := Year{ID: "2", Year: 2024}
	semester := Semester{ID: "3", Year: year, Period: period}
	course := Course{ID: "4", Number: "IS101", Name: "Introduction to IS"}
	instructor := Instructor{ID: "5", Person: Person{FirstName: "John", LastName: "Doe"}}
	student := Student{ID: "6", Person: Person{FirstName: "Alice", LastName: "Smith", Disambiguator: "2nd"}}
	section := Section{ID: "7", Name: "001", Semester: semester, Course: course, Instructor: instructor}
	registration := Registration{ID: "8", Student: student, Section: section}

	tests := []struct {
		name string
		obj  fmt.Stringer
		want string
	}{
		{name: "period", obj: period, want: "Spring"},
		{name: "year", obj: year, want: "2024"},
		{name: "semester", obj: semester, want: "2024 - Spring"},
		{name: "course", obj: course, want: "IS101 - Introduction to IS"},
		{name: "instructor", obj: instructor, want: "Doe, John"},
		{name: "student", obj: student, want: "Smith, Alice"},
		{name: "section", obj: section, want: "IS101 - 001 (2024 - Spring)"},
		{name: "registration", obj: registration, want: "IS101 - 001 (2024 - Spring) / Smith, Alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if first, second := tt.obj.String(), tt.obj.String(); first != second {
				t.Errorf("String() not idempotent: %q then %q", first, second)
			}
			if got := fmt.Sprint(tt.obj); got != tt.want {
				t.Errorf("fmt.Sprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString_reflectsFieldChanges(t *testing.T) {
	course := Course{Number: "IS101", Name: "Introduction to IS"}
	course.Name = "Intro to Information Systems"
	if got, want := course.String(), "IS101 - Intro to Information Systems"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
