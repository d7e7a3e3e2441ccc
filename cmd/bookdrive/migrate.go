package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	migrateTarget string
	migrateDryRun bool
	rollbackSteps int
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTarget, "to", "", "apply up to and including this migration")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "print the plan without applying it")
	rollbackCmd.Flags().IntVarP(&rollbackSteps, "steps", "s", 1, "number of migrations to roll back")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if migrateDryRun {
			plan, err := a.runner.Plan(ctx, migrateTarget)
			if err != nil {
				return err
			}
			if len(plan) == 0 {
				fmt.Println("No pending migrations.")
				return nil
			}
			fmt.Println("Would apply:")
			for _, s := range plan {
				fmt.Println("   -", s.Name)
			}
			return nil
		}

		n, err := a.runner.Migrate(ctx, migrateTarget)
		if err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Printf("Applied %d migration(s).\n", n)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		statuses, err := a.runner.Status(cmd.Context())
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen, color.Bold)
		yellow := color.New(color.FgYellow, color.Bold)
		for _, st := range statuses {
			if st.AppliedAt != nil {
				green.Printf("[X] %s", st.Name)
				fmt.Printf("  (applied %s)\n", st.AppliedAt.Format("2006-01-02 15:04:05"))
				continue
			}
			yellow.Printf("[ ] %s\n", st.Name)
		}
		return nil
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the latest migrations",
	Long: `Roll back the last migration or multiple migrations.

Examples:
  bookdrive rollback            # roll back the last migration
  bookdrive rollback --steps=2  # roll back the last 2 migrations
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rollbackSteps < 1 {
			return fmt.Errorf("steps must be at least 1")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		reverted, err := a.runner.Rollback(cmd.Context(), rollbackSteps)
		for _, name := range reverted {
			color.New(color.FgYellow).Println("rolled back", name)
		}
		return err
	},
}
