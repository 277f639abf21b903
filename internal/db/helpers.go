package db

import (
	"database/sql"
	"time"
)

// NullTime converts an optional instant for insertion.
func NullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// TimePtr converts a scanned sql.NullTime back to the model shape.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
