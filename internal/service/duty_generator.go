package service

import (
	"sort"

	"github.com/noah-isme/library-duty-api/internal/models"
	appErrors "github.com/noah-isme/library-duty-api/pkg/errors"
)

const (
	msgNoActiveStudents  = "no active committee members"
	msgNoActiveRooms     = "no active rooms"
	msgCapacityExhausted = "room capacity exhausted before any duty slot could be placed"
)

// dutyGenerationInput is the roster snapshot a single generation run consumes.
type dutyGenerationInput struct {
	Term     models.Term
	Students []models.Student
	Rooms    []models.Room
	MaxSlots int
}

// dutyGenerationOutcome carries either the placed assignments or the reason
// nothing could be placed.
type dutyGenerationOutcome struct {
	Assignments   []models.Assignment
	UnfilledSlots int
	Failure       *appErrors.Error
}

type dutyCell struct {
	room models.Room
	day  models.Weekday
}

// generateDutyAssignments runs the deterministic greedy pass. The loop is
// round-major on purpose: every member receives a first slot before anyone
// receives a second one. Placements are never revisited.
func generateDutyAssignments(in dutyGenerationInput, newID func() string) dutyGenerationOutcome {
	students := activeStudents(in.Students)
	if len(students) == 0 {
		return dutyGenerationOutcome{Failure: appErrors.Clone(appErrors.ErrEmptyRoster, msgNoActiveStudents)}
	}
	rooms := activeRooms(in.Rooms)
	if len(rooms) == 0 {
		return dutyGenerationOutcome{Failure: appErrors.Clone(appErrors.ErrEmptyRoster, msgNoActiveRooms)}
	}
	maxSlots := effectiveMaxSlots(in.MaxSlots)

	orderStudents(students)
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	ws := newDutyWorkingSet(students, maxSlots)

	remaining := make(map[roomDayKey]int, len(rooms)*len(models.Weekdays))
	for _, room := range rooms {
		for _, day := range models.Weekdays {
			key := roomDayKey{roomID: room.ID, day: day, term: in.Term}
			remaining[key] = room.Capacity
		}
	}

	placed := make([]models.Assignment, 0, len(students)*maxSlots)
	for round := 0; round < maxSlots; round++ {
		for _, st := range students {
			if !ws.CanAddWeeklySlot(st.ID, in.Term) {
				continue
			}
			cell, ok := pickDutyCell(ws, remaining, rooms, st.ID, in.Term)
			if !ok {
				continue
			}
			assignment := models.Assignment{
				ID:        newID(),
				StudentID: st.ID,
				RoomID:    cell.room.ID,
				DayOfWeek: cell.day,
				Term:      in.Term,
			}
			ws.add(assignment)
			remaining[roomDayKey{roomID: cell.room.ID, day: cell.day, term: in.Term}]--
			placed = append(placed, assignment)
		}
	}

	if len(placed) == 0 {
		return dutyGenerationOutcome{Failure: appErrors.Clone(appErrors.ErrCapacityExhausted, msgCapacityExhausted)}
	}

	unfilled := 0
	for _, st := range students {
		unfilled += maxSlots - ws.studentCount(st.ID, in.Term)
	}
	return dutyGenerationOutcome{Assignments: placed, UnfilledSlots: unfilled}
}

// pickDutyCell returns the eligible (room, weekday) cell with the fewest
// assignments so far. Ties go to the earlier weekday, then the lower room id,
// which is the iteration order.
func pickDutyCell(ws *dutyWorkingSet, remaining map[roomDayKey]int, rooms []models.Room, studentID string, term models.Term) (dutyCell, bool) {
	var (
		best      dutyCell
		bestCount = -1
	)
	for _, day := range models.Weekdays {
		if !ws.CanPlaceOnDay(studentID, day, term) {
			continue
		}
		for _, room := range rooms {
			if remaining[roomDayKey{roomID: room.ID, day: day, term: term}] <= 0 {
				continue
			}
			count := ws.roomDayCount(room.ID, day, term)
			if bestCount == -1 || count < bestCount {
				best = dutyCell{room: room, day: day}
				bestCount = count
			}
		}
	}
	return best, bestCount != -1
}

// orderStudents sorts by grade, class, name and id so identical rosters
// always produce identical placements.
func orderStudents(students []models.Student) {
	sort.SliceStable(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.ClassID != b.ClassID {
			return a.ClassID < b.ClassID
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func activeStudents(in []models.Student) []models.Student {
	out := make([]models.Student, 0, len(in))
	for _, st := range in {
		if st.IsActive {
			out = append(out, st)
		}
	}
	return out
}

func activeRooms(in []models.Room) []models.Room {
	out := make([]models.Room, 0, len(in))
	for _, room := range in {
		if room.IsActive {
			out = append(out, room)
		}
	}
	return out
}
