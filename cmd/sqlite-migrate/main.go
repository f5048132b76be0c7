package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/example/sqlite-store/sqlitedb"
	"github.com/example/sqlite-store/sqlitedb/migration"
)

var buildVersion = semver.Version{Minor: 1, Build: semver.Commit()}

var (
	dbPath       string
	migrationDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sqlite-migrate",
		Short:         "Apply versioned schema migrations to an SQLite database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "store.db", "database file path")
	rootCmd.PersistentFlags().StringVar(&migrationDir, "dir", "migrations", "directory containing {version}_{name}.sql scripts")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runUp,
	}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version and pending migrations",
		RunE:  runStatus,
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buildVersion.String())
		},
	}

	rootCmd.AddCommand(upCmd, statusCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlitedb.Open(sqlitedb.DefaultConfig(dbPath))
	if err != nil {
		return err
	}
	defer db.Close()

	migrations, err := migration.ScanDir(migrationDir)
	if err != nil {
		return err
	}

	result, err := migration.NewRunnerWithLogger(db, logger).Migrate(ctx, migrations)
	if err != nil {
		return err
	}
	if result.UpToDate() {
		fmt.Printf("up to date at version %d\n", result.To)
	} else {
		fmt.Printf("advanced from version %d to %d (%d applied)\n", result.From, result.To, result.Applied)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlitedb.Open(sqlitedb.DefaultConfig(dbPath))
	if err != nil {
		return err
	}
	defer db.Close()

	store := migration.NewVersionStore(db)
	current, err := store.Version(ctx)
	if err != nil {
		return err
	}
	instance, err := store.InstanceID(ctx)
	if err != nil {
		return err
	}

	migrations, err := migration.ScanDir(migrationDir)
	if err != nil {
		return err
	}
	pending := 0
	for _, m := range migrations {
		if m.Version > current {
			pending++
		}
	}

	fmt.Printf("database:  %s\n", dbPath)
	fmt.Printf("instance:  %s\n", instance)
	fmt.Printf("version:   %d\n", current)
	fmt.Printf("pending:   %d\n", pending)
	return nil
}
