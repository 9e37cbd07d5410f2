package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/library-duty-api/internal/app"
	"github.com/noah-isme/library-duty-api/internal/dto"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check a persisted duty schedule against the current roster",
	RunE:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		audit, err := a.Duty.Audit(ctx, termFlag)
		if err != nil {
			return err
		}
		if jsonOut {
			if err := writeJSON(cmd.OutOrStdout(), audit); err != nil {
				return err
			}
		} else {
			printAudit(cmd.OutOrStdout(), audit)
		}
		if !audit.Valid {
			return fmt.Errorf("%d violations in %s", len(audit.Violations), audit.Term)
		}
		return nil
	})
}

func printAudit(w io.Writer, audit *dto.DutyScheduleAudit) {
	fmt.Fprintf(w, "%s: checked %d assignments, %d violations\n", audit.Term, audit.Checked, len(audit.Violations))
	for _, v := range audit.Violations {
		fmt.Fprintf(w, "  [%s] %s\n", v.Kind, v.Message)
	}
}
