package handlers

import (
	"context"
	"net/http"
	"strconv"

	"learning-service/internal/event"
	"learning-service/internal/models"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	Lessons  *service.LessonService
	Progress *service.ProgressService
	Events   *event.Publisher
}

func NewLessonHandler(lessons *service.LessonService, progress *service.ProgressService, events *event.Publisher) *LessonHandler {
	return &LessonHandler{Lessons: lessons, Progress: progress, Events: events}
}

type lessonWithProgress struct {
	models.Lesson
	UserProgress *models.UserProgress `json:"user_progress,omitempty"`
}

// ListPaths returns every lesson path with its ordered lessons.
func (h *LessonHandler) ListPaths(c *gin.Context) {
	paths, err := h.Lessons.ListPaths(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paths)
}

// GetPath returns one path with the caller's progress attached per lesson.
func (h *LessonHandler) GetPath(c *gin.Context) {
	id, err := pathParamInt(c, "id")
	if err != nil {
		return
	}
	userID := UserID(c)

	path, err := h.Lessons.GetPath(context.Background(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	lessons := make([]lessonWithProgress, 0, len(path.Lessons))
	for _, l := range path.Lessons {
		progress, err := h.Progress.Progress.Find(context.Background(), userID, l.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		lessons = append(lessons, lessonWithProgress{Lesson: l, UserProgress: progress})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          path.ID,
		"title":       path.Title,
		"description": path.Description,
		"color":       path.Color,
		"icon":        path.Icon,
		"order":       path.Order,
		"lessons":     lessons,
	})
}

// GetLesson returns one lesson including content and the caller's progress.
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, err := pathParamInt(c, "id")
	if err != nil {
		return
	}
	userID := UserID(c)

	lesson, err := h.Lessons.GetLesson(context.Background(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	progress, err := h.Progress.Progress.Find(context.Background(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessonWithProgress{Lesson: *lesson, UserProgress: progress})
}

// StartLesson records a lesson start for the caller.
func (h *LessonHandler) StartLesson(c *gin.Context) {
	id, err := pathParamInt(c, "id")
	if err != nil {
		return
	}
	userID := UserID(c)

	progress, err := h.Progress.StartLesson(context.Background(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Events.Publish(event.LessonStarted, gin.H{
		"user_id":   userID,
		"lesson_id": id,
		"attempts":  progress.Attempts,
	})
	c.JSON(http.StatusOK, progress)
}

// CompleteLesson records a completion with its final score and returns the
// updated progress, the recomputed streak and any newly unlocked badges.
func (h *LessonHandler) CompleteLesson(c *gin.Context) {
	id, err := pathParamInt(c, "id")
	if err != nil {
		return
	}
	userID := UserID(c)

	var req struct {
		Score *int `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Progress.CompleteLesson(context.Background(), userID, id, *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Events.Publish(event.LessonCompleted, gin.H{
		"user_id":   userID,
		"lesson_id": id,
		"score":     *req.Score,
		"streak":    result.Streak,
	})
	for _, b := range result.NewBadges {
		h.Events.Publish(event.BadgeUnlocked, gin.H{
			"user_id":  userID,
			"badge_id": b.ID,
			"name":     b.Name,
		})
	}

	c.JSON(http.StatusOK, result)
}

func pathParamInt(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, err
	}
	return v, nil
}
