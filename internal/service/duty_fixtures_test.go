package service

import (
	"fmt"

	"github.com/noah-isme/library-duty-api/internal/models"
)

func committeeMember(id, name, classID string, grade int) models.Student {
	return models.Student{ID: id, Name: name, ClassID: classID, Grade: grade, IsActive: true}
}

func dutyRoom(id string, capacity int) models.Room {
	return models.Room{ID: id, Name: "Room " + id, Capacity: capacity, IsActive: true}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("asg-%d", n)
	}
}

// smallRoster is two grade-5 classes with two members each.
func smallRoster() []models.Student {
	return []models.Student{
		committeeMember("b2", "Budi", "B", 5),
		committeeMember("a1", "Ana", "A", 5),
		committeeMember("b1", "Bima", "B", 5),
		committeeMember("a2", "Ari", "A", 5),
	}
}

type placement struct {
	student string
	room    string
	day     models.Weekday
}

func placements(assignments []models.Assignment) []placement {
	out := make([]placement, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, placement{student: a.StudentID, room: a.RoomID, day: a.DayOfWeek})
	}
	return out
}
