package repository

import (
	"context"
	"errors"
	"time"

	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("user_progress")}
}

// Find returns the progress record for (userID, lessonID), or nil when the
// user has never started the lesson.
func (r *ProgressRepository) Find(ctx context.Context, userID string, lessonID int) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) ([]models.UserProgress, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.UserProgress
	for cur.Next(ctx) {
		var p models.UserProgress
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, cur.Err()
}

// RecordStart upserts a start transition: a fresh record begins at attempts=1
// and completed=false, an existing record only gets its attempt counter
// bumped. Completion state is never touched here.
func (r *ProgressRepository) RecordStart(ctx context.Context, userID string, lessonID int) (*models.UserProgress, error) {
	filter := bson.M{"user_id": userID, "lesson_id": lessonID}
	update := bson.M{
		"$inc":         bson.M{"attempts": 1},
		"$setOnInsert": bson.M{"completed": false},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var progress models.UserProgress
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// RecordCompletion upserts a completion: completed flips to true, the score
// is overwritten and completed_at set. A record created here starts at
// attempts=1.
func (r *ProgressRepository) RecordCompletion(ctx context.Context, userID string, lessonID, score int, at time.Time) (*models.UserProgress, error) {
	filter := bson.M{"user_id": userID, "lesson_id": lessonID}
	update := bson.M{
		"$set": bson.M{
			"completed":    true,
			"score":        score,
			"completed_at": at,
		},
		"$setOnInsert": bson.M{"attempts": 1},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var progress models.UserProgress
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
