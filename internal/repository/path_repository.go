package repository

import (
	"context"
	"errors"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PathRepository struct {
	Col *mongo.Collection
}

func NewPathRepository(db *mongo.Database) *PathRepository {
	return &PathRepository{Col: db.Collection("lesson_paths")}
}

func (r *PathRepository) FindAll(ctx context.Context) ([]models.LessonPath, error) {
	cur, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var paths []models.LessonPath
	for cur.Next(ctx) {
		var p models.LessonPath
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, cur.Err()
}

func (r *PathRepository) FindByID(ctx context.Context, id int) (*models.LessonPath, error) {
	var path models.LessonPath
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&path)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &path, nil
}
