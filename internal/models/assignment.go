package models

import "time"

// Assignment is a recurring weekly duty slot held for a whole term.
type Assignment struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	DayOfWeek Weekday   `db:"day_of_week" json:"day_of_week"`
	Term      Term      `db:"term" json:"term"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ViolationKind names the rule a persisted assignment set breaks.
type ViolationKind string

const (
	ViolationWeeklyCap      ViolationKind = "WEEKLY_CAP"
	ViolationClassDay       ViolationKind = "CLASS_DAY"
	ViolationRoomCapacity   ViolationKind = "ROOM_CAPACITY"
	ViolationUnknownStudent ViolationKind = "UNKNOWN_STUDENT"
	ViolationUnknownRoom    ViolationKind = "UNKNOWN_ROOM"
	ViolationInvalidDay     ViolationKind = "INVALID_DAY"
)

// ScheduleViolation describes a single broken rule found while auditing.
type ScheduleViolation struct {
	Kind         ViolationKind `json:"kind"`
	Message      string        `json:"message"`
	AssignmentID string        `json:"assignment_id,omitempty"`
	StudentID    string        `json:"student_id,omitempty"`
	ClassID      string        `json:"class_id,omitempty"`
	RoomID       string        `json:"room_id,omitempty"`
	DayOfWeek    Weekday       `json:"day_of_week,omitempty"`
}
