// CLI tool to create a user with a bcrypt-hashed password, default calorie log
// settings and, optionally, an active weight goal.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("create-user: %s", err)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env loaded: %s", err)
	}

	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	reader := bufio.NewReader(in)
	prompt := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	username := prompt("Username")
	email := prompt("Email")
	password := prompt("Password")
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	goal, err := parseGoalInput(
		prompt("Start weight (blank to skip goal)"),
		prompt("Goal weight"),
		prompt("Unit [lb]"),
		prompt("Weekly change rate [1]"),
	)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	authToken := uuid.New().String()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var userID int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, string(hash), authToken,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if goal == nil {
		_, err = tx.Exec(ctx, `INSERT INTO calorie_log_user_settings (user_id) VALUES ($1)`, userID)
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO calorie_log_user_settings (user_id, weight_lbs, target_weight_lbs)
			 VALUES ($1, $2, $3)`,
			userID, goal.startLbs(), goal.goalLbs())
	}
	if err != nil {
		return fmt.Errorf("create calorie log settings: %w", err)
	}

	if goal != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO goals (user_id, is_active, start_date, start_weight, goal_weight, unit, weekly_change_rate)
			 VALUES ($1, true, CURRENT_DATE, $2, $3, $4, $5)`,
			userID, goal.StartWeight, goal.GoalWeight, goal.Unit, goal.WeeklyChangeRate)
		if err != nil {
			return fmt.Errorf("create goal: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "username": username, "goal": goal != nil}).Info("user created")
	fmt.Fprintf(out, "\nUser created successfully!\n")
	fmt.Fprintf(out, "  ID:         %d\n", userID)
	fmt.Fprintf(out, "  Username:   %s\n", username)
	fmt.Fprintf(out, "  Auth Token: %s\n", authToken)
	return nil
}
