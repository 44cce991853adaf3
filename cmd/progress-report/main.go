// CLI tool to print a user's goal profile, weight trajectory and consistency
// score straight from the database.
// Usage: go run ./cmd/progress-report --user 1 trajectory
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/report"
	"github.com/robertojose17/MacroGoal-sub000/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "no .env loaded: %v\n", err)
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return fmt.Errorf("DB_URL is not set")
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	ctx := context.Background()
	pool, err := store.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	a := &app{
		reporter: report.NewReporter(store.New(pool, logger), progress.NewAnalyzer(logger)),
		out:      os.Stdout,
	}
	return newRootCmd(a).ExecuteContext(ctx)
}
