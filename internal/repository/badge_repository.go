package repository

import (
	"context"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BadgeRepository serves both the static badge catalog and the per-user
// earned-badge records.
type BadgeRepository struct {
	Badges     *mongo.Collection
	UserBadges *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{
		Badges:     db.Collection("badges"),
		UserBadges: db.Collection("user_badges"),
	}
}

func (r *BadgeRepository) AllBadges(ctx context.Context) ([]models.Badge, error) {
	cur, err := r.Badges.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []models.Badge
	for cur.Next(ctx) {
		var b models.Badge
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, cur.Err()
}

func (r *BadgeRepository) EarnedByUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	cur, err := r.UserBadges.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var earned []models.UserBadge
	for cur.Next(ctx) {
		var ub models.UserBadge
		if err := cur.Decode(&ub); err != nil {
			return nil, err
		}
		earned = append(earned, ub)
	}
	return earned, cur.Err()
}

// Award inserts an earned-badge record. The unique (user_id, badge_id) index
// turns a double award into ErrStateConflict, which callers treat as
// already-earned.
func (r *BadgeRepository) Award(ctx context.Context, ub *models.UserBadge) error {
	_, err := r.UserBadges.InsertOne(ctx, ub)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.ErrStateConflict
	}
	return err
}
