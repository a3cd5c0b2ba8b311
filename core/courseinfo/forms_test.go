package courseinfo_test

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/testutil"
)

func TestNewInstructor_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name     string
		form     courseinfo.NewInstructor
		wantErr  bool
		wantForm courseinfo.NewPerson
	}{
		{
			name:     "clean first name",
			form:     courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{FirstName: " Kevin ", LastName: "Trainor"}},
			wantForm: courseinfo.NewPerson{FirstName: "Kevin", LastName: "Trainor"},
		},
		{
			name:     "clean last name",
			form:     courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{FirstName: "Kevin", LastName: "\tTrainor  "}},
			wantForm: courseinfo.NewPerson{FirstName: "Kevin", LastName: "Trainor"},
		},
		{
			name: "clean disambiguator",
			form: courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{
				FirstName: "Kevin", LastName: "Trainor", Disambiguator: "  Jr ",
			}},
			wantForm: courseinfo.NewPerson{FirstName: "Kevin", LastName: "Trainor", Disambiguator: "Jr"},
		},
		{
			name:    "blank first name",
			form:    courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{FirstName: "   ", LastName: "Trainor"}},
			wantErr: true,
		},
		{
			name:    "missing last name",
			form:    courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{FirstName: "Kevin"}},
			wantErr: true,
		},
		{
			name: "invalid user id",
			form: courseinfo.NewInstructor{NewPerson: courseinfo.NewPerson{
				UserID: "42", FirstName: "Kevin", LastName: "Trainor",
			}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				assert.Equal(t, tt.wantForm, tt.form.NewPerson)
			}
		})
	}
}

type validatable interface {
	Validate(validate *validator.Validate) error
}

func TestForms_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()
	id := "8a4a5b2c-3a3e-4f4e-9d5c-6b7a8c9d0e1f"

	tests := []struct {
		name       string
		form       validatable
		wantFields []string
	}{
		{name: "period ok", form: &courseinfo.NewPeriod{Sequence: 1, Name: " Spring "}},
		{name: "period invalid", form: &courseinfo.NewPeriod{Name: "  "}, wantFields: []string{"sequence", "name"}},
		{name: "year ok", form: &courseinfo.NewYear{Year: 2024}},
		{name: "year too short", form: &courseinfo.NewYear{Year: 24}, wantFields: []string{"year"}},
		{name: "year too long", form: &courseinfo.NewYear{Year: 20245}, wantFields: []string{"year"}},
		{name: "semester ok", form: &courseinfo.NewSemester{YearID: id, PeriodID: id}},
		{name: "semester invalid", form: &courseinfo.NewSemester{YearID: "2024"}, wantFields: []string{"year_id", "period_id"}},
		{name: "course ok", form: &courseinfo.NewCourse{Number: "IS101", Name: "Introduction to IS"}},
		{name: "course number too long", form: &courseinfo.NewCourse{Number: strings.Repeat("X", 21), Name: "Intro"}, wantFields: []string{"number"}},
		{name: "student ok", form: &courseinfo.NewStudent{NewPerson: courseinfo.NewPerson{FirstName: "Alice", LastName: "Smith"}}},
		{name: "student blank", form: &courseinfo.NewStudent{}, wantFields: []string{"first_name", "last_name"}},
		{name: "section ok", form: &courseinfo.NewSection{Name: "001", SemesterID: id, CourseID: id, InstructorID: id}},
		{name: "section name too long", form: &courseinfo.NewSection{Name: "00000000001", SemesterID: id, CourseID: id, InstructorID: id}, wantFields: []string{"name"}},
		{name: "section missing refs", form: &courseinfo.NewSection{Name: "001"}, wantFields: []string{"semester_id", "course_id", "instructor_id"}},
		{name: "registration ok", form: &courseinfo.NewRegistration{StudentID: id, SectionID: " " + id + " "}},
		{name: "registration missing refs", form: &courseinfo.NewRegistration{}, wantFields: []string{"student_id", "section_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.TranslateValidationErrors(tt.form.Validate(validate), translator)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			fields := make([]string, 0, len(vErr.Fields))
			for _, fld := range vErr.Fields {
				fields = append(fields, fld.Field)
				assert.NotEmpty(t, fld.Error)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
