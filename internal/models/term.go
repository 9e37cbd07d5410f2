package models

import (
	"fmt"
	"strings"
)

// Term identifies the half of the school year a duty schedule covers.
type Term string

const (
	TermFirst  Term = "FIRST_TERM"
	TermSecond Term = "SECOND_TERM"
)

// Terms lists every schedulable term in calendar order.
var Terms = []Term{TermFirst, TermSecond}

// Valid reports whether t is one of the known terms.
func (t Term) Valid() bool {
	return t == TermFirst || t == TermSecond
}

// ParseTerm normalises raw input into a Term.
func ParseTerm(raw string) (Term, error) {
	t := Term(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown term %q", raw)
	}
	return t, nil
}

// Weekday is a school day, Monday (1) through Friday (5).
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the school week in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = map[Weekday]string{
	Monday:    "MONDAY",
	Tuesday:   "TUESDAY",
	Wednesday: "WEDNESDAY",
	Thursday:  "THURSDAY",
	Friday:    "FRIDAY",
}

// Valid reports whether d falls within Monday..Friday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DAY_%d", int(d))
}
