package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/library-duty-api/internal/app"
	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
)

var forceFlag bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and commit the duty schedule of a term",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "replace an existing schedule")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		result, err := a.Duty.Generate(ctx, dto.GenerateDutyScheduleRequest{Term: termFlag, ForceRegenerate: forceFlag})
		if err != nil {
			return err
		}
		if jsonOut {
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else {
			printGenerateSummary(cmd.OutOrStdout(), result)
		}
		if !result.Success {
			return fmt.Errorf("%s: %s", result.Code, result.Error)
		}
		return nil
	})
}

func printGenerateSummary(w io.Writer, result *dto.GenerateDutyScheduleResult) {
	if !result.Success {
		fmt.Fprintf(w, "%s not generated: %s\n", result.Term, result.Error)
		return
	}
	stats := result.Stats
	fmt.Fprintf(w, "%s: %d assignments for %d members (balance %.2f, unfilled %d, replaced %d)\n",
		result.Term, stats.TotalAssignments, stats.StudentsAssigned, stats.BalanceScore, result.UnfilledSlots, result.Replaced)
	for _, day := range models.Weekdays {
		fmt.Fprintf(w, "  %-9s %d\n", day, stats.AssignmentsByDay[day])
	}
}
