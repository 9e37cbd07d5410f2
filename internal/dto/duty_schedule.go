package dto

import "github.com/noah-isme/library-duty-api/internal/models"

// GenerateDutyScheduleRequest asks for a duty schedule for one term.
type GenerateDutyScheduleRequest struct {
	Term            string `json:"term" validate:"required,oneof=FIRST_TERM SECOND_TERM"`
	ForceRegenerate bool   `json:"forceRegenerate"`
}

// DutyScheduleStats summarises workload fairness and coverage of a schedule.
type DutyScheduleStats struct {
	TotalAssignments             int                    `json:"totalAssignments"`
	StudentsAssigned             int                    `json:"studentsAssigned"`
	AverageAssignmentsPerStudent float64                `json:"averageAssignmentsPerStudent"`
	AssignmentsByDay             map[models.Weekday]int `json:"assignmentsByDay"`
	AssignmentsByRoom            map[string]int         `json:"assignmentsByRoom"`
	BalanceScore                 float64                `json:"balanceScore"`
}

// GenerateDutyScheduleResult is either a committed schedule or the reason
// generation was refused. Code mirrors the typed error code on failure.
type GenerateDutyScheduleResult struct {
	Success       bool                `json:"success"`
	Term          models.Term         `json:"term"`
	Assignments   []models.Assignment `json:"assignments,omitempty"`
	Stats         *DutyScheduleStats  `json:"stats,omitempty"`
	UnfilledSlots int                 `json:"unfilledSlots"`
	Replaced      int64               `json:"replaced"`
	Error         string              `json:"error,omitempty"`
	Code          string              `json:"code,omitempty"`
}

// DutyScheduleView is the persisted schedule for a term.
type DutyScheduleView struct {
	Term        models.Term         `json:"term"`
	Assignments []models.Assignment `json:"assignments"`
	Stats       DutyScheduleStats   `json:"stats"`
}

// DutyScheduleAudit lists invariant violations found in a persisted schedule.
type DutyScheduleAudit struct {
	Term       models.Term                `json:"term"`
	Valid      bool                       `json:"valid"`
	Checked    int                        `json:"checked"`
	Violations []models.ScheduleViolation `json:"violations"`
}
