package engine

import (
	"learning-service/internal/models"
)

// UserState is the aggregate history badge criteria are evaluated against.
type UserState struct {
	CurrentStreak    int
	CompletedLessons map[int]bool  // distinct lesson IDs with a completed record
	PathLessons      map[int][]int // path ID -> IDs of every lesson in that path
}

// EvaluateBadges scans the given badges and returns those the user has newly
// qualified for. Badges whose ID appears in earned are skipped, so awarding
// stays idempotent; badges with an unknown criteria type never unlock.
func EvaluateBadges(badges []models.Badge, earned map[int]bool, st UserState) []models.Badge {
	var unlocked []models.Badge
	for _, b := range badges {
		if earned[b.ID] {
			continue
		}
		if criterionMet(b.Criteria, st) {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

func criterionMet(c models.BadgeCriteria, st UserState) bool {
	switch c.Type {
	case models.CriteriaLessonsCompleted:
		return len(st.CompletedLessons) >= c.Count
	case models.CriteriaPathCompleted:
		lessons := st.PathLessons[c.PathID]
		if len(lessons) == 0 {
			return false
		}
		for _, id := range lessons {
			if !st.CompletedLessons[id] {
				return false
			}
		}
		return true
	case models.CriteriaStreak:
		return st.CurrentStreak >= c.Count
	}
	return false
}
