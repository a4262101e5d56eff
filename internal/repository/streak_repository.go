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

type StreakRepository struct {
	Col *mongo.Collection
}

func NewStreakRepository(db *mongo.Database) *StreakRepository {
	return &StreakRepository{Col: db.Collection("user_streaks")}
}

// Get returns the user's streak state, or a zeroed state when the user has
// never completed a lesson.
func (r *StreakRepository) Get(ctx context.Context, userID string) (*models.UserStreak, error) {
	var streak models.UserStreak
	err := r.Col.FindOne(ctx, bson.M{"_id": userID}).Decode(&streak)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.UserStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// Swap persists next only if the stored document still matches prev, inserting
// when the user has no streak document yet. When another writer got there
// first the filter no longer matches and the attempted insert collides on
// _id, which surfaces as ErrStateConflict for the caller to retry against
// freshly read state.
func (r *StreakRepository) Swap(ctx context.Context, userID string, prev, next *models.UserStreak) error {
	filter := bson.M{
		"_id":            userID,
		"current_streak": prev.CurrentStreak,
		"longest_streak": prev.LongestStreak,
	}
	update := bson.M{"$set": bson.M{
		"current_streak":   next.CurrentStreak,
		"longest_streak":   next.LongestStreak,
		"last_lesson_date": next.LastLessonDate,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return apperr.ErrStateConflict
	}
	return err
}
