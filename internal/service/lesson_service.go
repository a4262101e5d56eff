package service

import (
	"context"

	"learning-service/internal/models"
)

// LessonService serves the read-only lesson/path catalog.
type LessonService struct {
	Paths   PathCatalog
	Lessons LessonCatalog
}

func NewLessonService(paths PathCatalog, lessons LessonCatalog) *LessonService {
	return &LessonService{Paths: paths, Lessons: lessons}
}

// ListPaths returns every path ordered by its ordering key, each with its
// lessons attached in lesson order.
func (s *LessonService) ListPaths(ctx context.Context) ([]models.LessonPath, error) {
	paths, err := s.Paths.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range paths {
		lessons, err := s.Lessons.FindByPath(ctx, paths[i].ID)
		if err != nil {
			return nil, err
		}
		paths[i].Lessons = lessons
	}
	return paths, nil
}

func (s *LessonService) GetPath(ctx context.Context, id int) (*models.LessonPath, error) {
	path, err := s.Paths.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Lessons.FindByPath(ctx, id)
	if err != nil {
		return nil, err
	}
	path.Lessons = lessons
	return path, nil
}

func (s *LessonService) GetLesson(ctx context.Context, id int) (*models.Lesson, error) {
	return s.Lessons.FindByID(ctx, id)
}
