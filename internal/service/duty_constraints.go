package service

import (
	"fmt"

	"github.com/noah-isme/library-duty-api/internal/models"
)

// CanAddWeeklySlot reports whether the student still holds fewer recurring
// slots in the term than the per-term cap.
func (w *dutyWorkingSet) CanAddWeeklySlot(studentID string, term models.Term) bool {
	return w.studentCount(studentID, term) < w.maxSlots
}

// CanPlaceOnDay reports whether nobody from the student's class already has
// a slot on that weekday in the term. Students missing from the roster are
// never placeable.
func (w *dutyWorkingSet) CanPlaceOnDay(studentID string, day models.Weekday, term models.Term) bool {
	classID, ok := w.classOf[studentID]
	if !ok {
		return false
	}
	return w.classDayCount(classID, day, term) == 0
}

// auditDutyAssignments replays persisted assignments through the same
// predicates the generator uses and reports every rule they break.
func auditDutyAssignments(term models.Term, students []models.Student, rooms []models.Room, classNames map[string]string, assignments []models.Assignment, maxSlots int) []models.ScheduleViolation {
	maxSlots = effectiveMaxSlots(maxSlots)
	ws := newDutyWorkingSet(students, maxSlots)
	capacity := make(map[string]int, len(rooms))
	for _, room := range rooms {
		capacity[room.ID] = room.Capacity
	}

	violations := make([]models.ScheduleViolation, 0)
	for _, a := range assignments {
		if a.Term != term {
			continue
		}
		base := models.ScheduleViolation{AssignmentID: a.ID, StudentID: a.StudentID, RoomID: a.RoomID, DayOfWeek: a.DayOfWeek}

		if !a.DayOfWeek.Valid() {
			v := base
			v.Kind = models.ViolationInvalidDay
			v.Message = fmt.Sprintf("day_of_week %d is outside Monday-Friday", int(a.DayOfWeek))
			violations = append(violations, v)
		}

		classID, known := ws.classOf[a.StudentID]
		if !known {
			v := base
			v.Kind = models.ViolationUnknownStudent
			v.Message = fmt.Sprintf("student %s is not an active committee member", a.StudentID)
			violations = append(violations, v)
		}

		roomCap, roomKnown := capacity[a.RoomID]
		if !roomKnown {
			v := base
			v.Kind = models.ViolationUnknownRoom
			v.Message = fmt.Sprintf("room %s is not an active room", a.RoomID)
			violations = append(violations, v)
		}

		if !ws.CanAddWeeklySlot(a.StudentID, a.Term) {
			v := base
			v.Kind = models.ViolationWeeklyCap
			v.Message = fmt.Sprintf("student %s holds more than %d slots in %s", a.StudentID, maxSlots, a.Term)
			violations = append(violations, v)
		}

		if known && !ws.CanPlaceOnDay(a.StudentID, a.DayOfWeek, a.Term) {
			v := base
			v.Kind = models.ViolationClassDay
			v.ClassID = classID
			v.Message = fmt.Sprintf("class %s already has a member on duty on %s", classLabel(classID, classNames), a.DayOfWeek)
			violations = append(violations, v)
		}

		if roomKnown && ws.roomDayCount(a.RoomID, a.DayOfWeek, a.Term) >= roomCap {
			v := base
			v.Kind = models.ViolationRoomCapacity
			v.Message = fmt.Sprintf("room %s exceeds capacity %d on %s", a.RoomID, roomCap, a.DayOfWeek)
			violations = append(violations, v)
		}

		ws.add(a)
	}
	return violations
}

func classLabel(classID string, names map[string]string) string {
	if name, ok := names[classID]; ok && name != "" {
		return name
	}
	return classID
}
