package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
)

func TestPrintGenerateSummary(t *testing.T) {
	var buf bytes.Buffer
	printGenerateSummary(&buf, &dto.GenerateDutyScheduleResult{
		Success: true,
		Term:    models.TermFirst,
		Stats: &dto.DutyScheduleStats{
			TotalAssignments: 10,
			StudentsAssigned: 10,
			BalanceScore:     1,
			AssignmentsByDay: map[models.Weekday]int{models.Monday: 2},
		},
	})
	out := buf.String()
	assert.Contains(t, out, "FIRST_TERM: 10 assignments for 10 members (balance 1.00")
	assert.Contains(t, out, "MONDAY")
	assert.Contains(t, out, "FRIDAY")

	buf.Reset()
	printGenerateSummary(&buf, &dto.GenerateDutyScheduleResult{Term: models.TermSecond, Error: "no active rooms"})
	assert.Equal(t, "SECOND_TERM not generated: no active rooms\n", buf.String())
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	printAudit(&buf, &dto.DutyScheduleAudit{
		Term:    models.TermFirst,
		Checked: 4,
		Violations: []models.ScheduleViolation{
			{Kind: models.ViolationWeeklyCap, Message: "student s1 holds more than 2 slots in FIRST_TERM"},
		},
	})
	assert.Contains(t, buf.String(), "checked 4 assignments, 1 violations")
	assert.Contains(t, buf.String(), "[WEEKLY_CAP] student s1")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["generate"])
	assert.True(t, names["audit"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("term"))
	assert.NotNil(t, generateCmd.Flags().Lookup("force"))
}
