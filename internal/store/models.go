package store

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// User maps to the users table. AuthToken and Password are hidden from JSON responses.
type User struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// goalRow maps to the goals table. Every measurement is nullable; the
// resolver decides what a missing value means.
type goalRow struct {
	ID                 int       `db:"id"`
	UserID             int       `db:"user_id"`
	IsActive           bool      `db:"is_active"`
	StartDate          *DateOnly `db:"start_date"`
	StartWeight        *float64  `db:"start_weight"`
	GoalWeight         *float64  `db:"goal_weight"`
	Unit               *string   `db:"unit"`
	WeeklyChangeRate   *float64  `db:"weekly_change_rate"`
	DailyCalorieTarget *float64  `db:"daily_calorie_target"`
	DailyProteinTarget *float64  `db:"daily_protein_target"`
	CreatedAt          time.Time `db:"created_at"`
}

// settingsRow is the subset of calorie_log_user_settings the progress engine
// reads: the protein target and the body profile used for the maintenance
// estimate. Weights in this table are always pounds.
type settingsRow struct {
	UserID          int       `db:"user_id"`
	CalorieBudget   int       `db:"calorie_budget"`
	ProteinTargetG  int       `db:"protein_target_g"`
	Sex             *string   `db:"sex"`
	DateOfBirth     *DateOnly `db:"date_of_birth"`
	HeightCM        *float64  `db:"height_cm"`
	WeightLBS       *float64  `db:"weight_lbs"`
	ActivityLevel   *string   `db:"activity_level"`
	TargetWeightLBS *float64  `db:"target_weight_lbs"`
}

// logItemRow is one food row of calorie_log_items.
type logItemRow struct {
	Date     DateOnly `db:"date"`
	Calories int      `db:"calories"`
	ProteinG *float64 `db:"protein_g"`
}

// weightRow is one weight_log row. Weight and unit are stored as entered.
type weightRow struct {
	Date   DateOnly `db:"date"`
	Weight *float64 `db:"weight"`
	Unit   *string  `db:"unit"`
}

// DataVersion identifies the state of a user's progress data. It changes
// whenever a goal, log item, weight entry or settings row is written or removed.
type DataVersion struct {
	LastModified *time.Time `db:"last_modified"`
	RowCount     int64      `db:"row_count"`
}

// Key renders the version for use in cache keys.
func (v DataVersion) Key() string {
	if v.LastModified == nil {
		return "0:" + strconv.FormatInt(v.RowCount, 10)
	}
	return strconv.FormatInt(v.LastModified.UnixNano(), 10) + ":" + strconv.FormatInt(v.RowCount, 10)
}
