// Package engine holds the streak and badge rules. Like the scorer it is
// pure: it mutates in-memory state handed to it and never touches storage.
package engine

import (
	"time"

	"learning-service/internal/models"
)

// DateOnly truncates a timestamp to its calendar date. Day boundaries are
// UTC; a deployment serving one timezone can shift timestamps before calling
// in, but the engine itself compares UTC dates only.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak applies one lesson completion at the given time:
// a completion the day after the last one extends the streak, a second
// completion the same day leaves it unchanged, and anything else (a gap of
// two or more days, or no prior completion) restarts it at 1.
// LongestStreak and LastLessonDate are always brought up to date.
func AdvanceStreak(st *models.UserStreak, now time.Time) {
	today := DateOnly(now)

	next := 1
	if st.LastLessonDate != nil {
		last := DateOnly(*st.LastLessonDate)
		switch {
		case last.Equal(today.AddDate(0, 0, -1)):
			next = st.CurrentStreak + 1
		case last.Equal(today):
			next = st.CurrentStreak
		}
	}

	st.CurrentStreak = next
	if next > st.LongestStreak {
		st.LongestStreak = next
	}
	st.LastLessonDate = &today
}
