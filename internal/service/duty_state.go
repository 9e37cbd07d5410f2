package service

import "github.com/noah-isme/library-duty-api/internal/models"

type studentTermKey struct {
	studentID string
	term      models.Term
}

type classDayKey struct {
	classID string
	day     models.Weekday
	term    models.Term
}

type roomDayKey struct {
	roomID string
	day    models.Weekday
	term   models.Term
}

// dutyWorkingSet counts placed assignments per student, class-day and room-day
// so constraint checks stay constant time while a schedule is built or audited.
type dutyWorkingSet struct {
	maxSlots   int
	classOf    map[string]string
	perStudent map[studentTermKey]int
	classDay   map[classDayKey]int
	roomDay    map[roomDayKey]int
}

func newDutyWorkingSet(students []models.Student, maxSlots int) *dutyWorkingSet {
	classOf := make(map[string]string, len(students))
	for _, st := range students {
		classOf[st.ID] = st.ClassID
	}
	return &dutyWorkingSet{
		maxSlots:   maxSlots,
		classOf:    classOf,
		perStudent: make(map[studentTermKey]int),
		classDay:   make(map[classDayKey]int),
		roomDay:    make(map[roomDayKey]int),
	}
}

// add records an assignment in every index. Assignments whose student is not
// on the roster are still counted per student and per room.
func (w *dutyWorkingSet) add(a models.Assignment) {
	w.perStudent[studentTermKey{studentID: a.StudentID, term: a.Term}]++
	w.roomDay[roomDayKey{roomID: a.RoomID, day: a.DayOfWeek, term: a.Term}]++
	if classID, ok := w.classOf[a.StudentID]; ok {
		w.classDay[classDayKey{classID: classID, day: a.DayOfWeek, term: a.Term}]++
	}
}

func (w *dutyWorkingSet) studentCount(studentID string, term models.Term) int {
	return w.perStudent[studentTermKey{studentID: studentID, term: term}]
}

func (w *dutyWorkingSet) roomDayCount(roomID string, day models.Weekday, term models.Term) int {
	return w.roomDay[roomDayKey{roomID: roomID, day: day, term: term}]
}

func (w *dutyWorkingSet) classDayCount(classID string, day models.Weekday, term models.Term) int {
	return w.classDay[classDayKey{classID: classID, day: day, term: term}]
}
