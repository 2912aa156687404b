package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// tstzToTime returns t.Time when Valid, else zero time.
func tstzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToTstz maps a zero time to NULL.
func timeToTstz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

// textToString returns the string value when Valid, else "".
func textToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
