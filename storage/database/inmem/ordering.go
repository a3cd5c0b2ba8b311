package inmemdb

import "github.com/davalosk/ezu/core/courseinfo"

// default orderings, matching the ORDER BY clauses of the SQL repositories

func semesterLess(a, b courseinfo.Semester) bool {
	if a.Year.Year != b.Year.Year {
		return a.Year.Year < b.Year.Year
	}
	return a.Period.Sequence < b.Period.Sequence
}

func courseLess(a, b courseinfo.Course) bool {
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return a.Name < b.Name
}

func personLess(a, b courseinfo.Person) bool {
	if a.LastName != b.LastName {
		return a.LastName < b.LastName
	}
	if a.FirstName != b.FirstName {
		return a.FirstName < b.FirstName
	}
	return a.Disambiguator < b.Disambiguator
}

func sectionLess(a, b courseinfo.Section) bool {
	if a.Course.Number != b.Course.Number {
		return a.Course.Number < b.Course.Number
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return semesterLess(a.Semester, b.Semester)
}
