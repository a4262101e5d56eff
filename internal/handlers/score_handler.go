package handlers

import (
	"context"
	"net/http"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
	"learning-service/internal/scoring"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

// ScoreHandler grades completed interactive activities against the canonical
// answers stored in the lesson catalog.
type ScoreHandler struct {
	Lessons *service.LessonService
}

func NewScoreHandler(lessons *service.LessonService) *ScoreHandler {
	return &ScoreHandler{Lessons: lessons}
}

// ScoreMatching grades a finished matching activity.
func (h *ScoreHandler) ScoreMatching(c *gin.Context) {
	var req struct {
		LessonID int               `json:"lesson_id" binding:"required"`
		Section  *int              `json:"section" binding:"required"`
		Chosen   map[string]string `json:"chosen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	sec, err := h.activitySection(req.LessonID, *req.Section, models.ActivityMatching)
	if err != nil {
		respondError(c, err)
		return
	}
	score, err := scoring.ScoreMatching(req.Chosen, sec.Pairs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

// ScoreDragDrop grades a finished drag-drop categorization.
func (h *ScoreHandler) ScoreDragDrop(c *gin.Context) {
	var req struct {
		LessonID   int               `json:"lesson_id" binding:"required"`
		Section    *int              `json:"section" binding:"required"`
		Placements map[string]string `json:"placements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	sec, err := h.activitySection(req.LessonID, *req.Section, models.ActivityDragDrop)
	if err != nil {
		respondError(c, err)
		return
	}
	score, err := scoring.ScoreDragDrop(req.Placements, sec.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

// AcknowledgeScenario confirms the caller walked through a scenario section.
func (h *ScoreHandler) AcknowledgeScenario(c *gin.Context) {
	var req struct {
		LessonID int  `json:"lesson_id" binding:"required"`
		Section  *int `json:"section" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	if _, err := h.activitySection(req.LessonID, *req.Section, models.ActivityScenario); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": scoring.ScoreScenario()})
}

// Aggregate blends quiz correctness and activity scores into the final lesson
// score the client submits on completion.
func (h *ScoreHandler) Aggregate(c *gin.Context) {
	var req struct {
		QuizResults    []bool `json:"quiz_results"`
		ActivityScores []int  `json:"activity_scores"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": scoring.AggregateLessonScore(req.QuizResults, req.ActivityScores)})
}

func (h *ScoreHandler) activitySection(lessonID, section int, activity string) (*models.Section, error) {
	lesson, err := h.Lessons.GetLesson(context.Background(), lessonID)
	if err != nil {
		return nil, err
	}
	if section < 0 || section >= len(lesson.Content.Sections) {
		return nil, apperr.Validationf("lesson %d has no section %d", lessonID, section)
	}
	sec := lesson.Content.Sections[section]
	if sec.Type != models.SectionInteractive || sec.Activity != activity {
		return nil, apperr.Validationf("section %d of lesson %d is not a %s activity", section, lessonID, activity)
	}
	return &sec, nil
}
