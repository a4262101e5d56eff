// Package scoring grades completed interactive activities and aggregates the
// per-lesson final score. All functions are pure; grading operates on label
// identity, never on display order.
package scoring

import (
	"math"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

// ScoreMatching grades a matching activity. chosen maps each left term to the
// right term the user picked; pairs is the canonical pairing. A left term
// with no chosen right term counts as incorrect.
func ScoreMatching(chosen map[string]string, pairs []models.MatchingPair) (int, error) {
	if len(pairs) == 0 {
		return 0, apperr.Validationf("matching activity has no pairs to grade")
	}
	correct := 0
	for _, p := range pairs {
		if chosen[p.Left] == p.Right {
			correct++
		}
	}
	return percent(correct, len(pairs)), nil
}

// ScoreDragDrop grades a categorization activity. placements maps each item
// text to the category the user dropped it in; items carry the canonical
// category. An item placed nowhere counts as incorrect.
func ScoreDragDrop(placements map[string]string, items []models.DragDropItem) (int, error) {
	if len(items) == 0 {
		return 0, apperr.Validationf("drag-drop activity has no items to grade")
	}
	correct := 0
	for _, it := range items {
		if placements[it.Text] == it.Category {
			correct++
		}
	}
	return percent(correct, len(items)), nil
}

// ScoreScenario grades a scenario walkthrough. Scenarios are informational
// and only require acknowledgment, so confirmation always scores full marks.
func ScoreScenario() int {
	return 100
}

// AggregateLessonScore blends quiz correctness and activity scores collected
// during one playthrough into the lesson's final score. A lesson without a
// quiz, or without activities, is not penalized for the missing dimension:
// that dimension defaults to 100.
func AggregateLessonScore(quizResults []bool, activityScores []int) int {
	quizScore := 100
	if len(quizResults) > 0 {
		correct := 0
		for _, ok := range quizResults {
			if ok {
				correct++
			}
		}
		quizScore = percent(correct, len(quizResults))
	}

	activityScore := 100
	if len(activityScores) > 0 {
		sum := 0
		for _, s := range activityScores {
			sum += s
		}
		activityScore = int(math.Round(float64(sum) / float64(len(activityScores))))
	}

	return int(math.Round(float64(quizScore+activityScore) / 2))
}

func percent(correct, total int) int {
	return int(math.Round(float64(correct) / float64(total) * 100))
}
