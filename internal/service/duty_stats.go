package service

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
)

// calculateDutyStats derives coverage and fairness figures from a final
// assignment set without touching it.
func calculateDutyStats(assignments []models.Assignment, maxSlots int) dto.DutyScheduleStats {
	maxSlots = effectiveMaxSlots(maxSlots)
	stats := dto.DutyScheduleStats{
		TotalAssignments:  len(assignments),
		AssignmentsByDay:  make(map[models.Weekday]int, len(models.Weekdays)),
		AssignmentsByRoom: make(map[string]int),
	}
	for _, day := range models.Weekdays {
		stats.AssignmentsByDay[day] = 0
	}

	perStudent := make(map[string]int)
	for _, a := range assignments {
		perStudent[a.StudentID]++
		stats.AssignmentsByDay[a.DayOfWeek]++
		stats.AssignmentsByRoom[a.RoomID]++
	}
	stats.StudentsAssigned = len(perStudent)
	if stats.StudentsAssigned == 0 {
		return stats
	}
	stats.AverageAssignmentsPerStudent = float64(stats.TotalAssignments) / float64(stats.StudentsAssigned)
	stats.BalanceScore = balanceScore(perStudent, maxSlots)
	return stats
}

// balanceScore is 1 minus the population standard deviation of per-student
// slot counts normalised by the per-term cap, clamped to [0,1].
func balanceScore(perStudent map[string]int, maxSlots int) float64 {
	counts := make([]float64, 0, len(perStudent))
	for _, n := range perStudent {
		counts = append(counts, float64(n))
	}
	_, variance := stat.PopMeanVariance(counts, nil)
	score := 1 - math.Sqrt(variance)/float64(maxSlots)
	return math.Max(0, math.Min(1, score))
}
