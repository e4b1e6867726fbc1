package service

import (
	"context"

	subModel "videoach_backend/internals/features/subscriptions/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberSubscriptions loads the live subscriptions of a member with their selection sets.
// A nil clubID returns every club.
func MemberSubscriptions(ctx context.Context, db *gorm.DB, userID uuid.UUID, clubID *uuid.UUID) ([]subModel.SubscriptionModel, error) {
	q := db.WithContext(ctx).
		Joins("JOIN subscription_members sm ON sm.subscription_id = subscriptions.subscription_id").
		Where("sm.user_id = ? AND subscriptions.subscription_deleted = false", userID).
		Preload("ActivityGroups").
		Preload("Activities").
		Preload("Sites").
		Preload("Rooms").
		Preload("Club")
	if clubID != nil {
		q = q.Where("subscriptions.subscription_club_id = ?", *clubID)
	}
	var subs []subModel.SubscriptionModel
	if err := q.Order("subscriptions.subscription_created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GroupByClub keeps the first-seen club order.
func GroupByClub(subs []subModel.SubscriptionModel) ([]uuid.UUID, map[uuid.UUID][]subModel.SubscriptionModel) {
	var order []uuid.UUID
	out := make(map[uuid.UUID][]subModel.SubscriptionModel)
	for _, s := range subs {
		if _, ok := out[s.SubscriptionClubID]; !ok {
			order = append(order, s.SubscriptionClubID)
		}
		out[s.SubscriptionClubID] = append(out[s.SubscriptionClubID], s)
	}
	return order, out
}
