package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/db"
	"github.com/taskline-dev/taskline/internal/aggregate"
	"github.com/taskline-dev/taskline/internal/store"
	"github.com/taskline-dev/taskline/internal/workflow"
)

var (
	entities *store.Store
	engine   *aggregate.Engine
	issues   *workflow.Controller
)

var rootCmd = &cobra.Command{
	Use:           "taskline",
	Short:         "Project tracker administration",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		driver := os.Getenv("DB_DRIVER")

		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = "host=127.0.0.1 port=5432 user=taskline password=taskline dbname=taskline sslmode=disable"
			log.Println("DATABASE_URL not set, using local defaults")
		}

		if err := db.ConnectDatabase(driver, dsn); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := db.MigrateDatabase(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		entities = store.New(db.DB)
		engine = aggregate.New(db.DB)
		issues = workflow.New(entities)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(workCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(reportCmd)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// optionalID turns a flag value into a nullable reference: 0 means unset.
func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
