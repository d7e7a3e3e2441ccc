package main

import (
	"log"

	"github.com/spf13/cobra"

	"bookdrive/internal/service"
)

var (
	seedFile    string
	seedMigrate bool
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures.yaml", "YAML fixture file")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "apply pending migrations first")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, sponsors, books and drawings from a YAML fixture file",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Starting seed...")
		ctx := cmd.Context()

		fx, err := service.LoadFixtures(seedFile)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if seedMigrate {
			if _, err := a.runner.Migrate(ctx, ""); err != nil {
				return err
			}
		}

		seeder := service.NewSeeder(a.store, a.users(), service.NewSponsorService(a.store), service.NewBookService(a.store))
		res, err := seeder.Seed(ctx, fx)
		if err != nil {
			return err
		}

		log.Printf("Seed completed successfully!")
		log.Printf("  - Created: %d", res.Created)
		log.Printf("  - Updated: %d", res.Updated)
		log.Printf("  - Skipped: %d", res.Skipped)
		return nil
	},
}
