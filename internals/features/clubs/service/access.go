package service

import (
	"context"

	"videoach_backend/internals/features/clubs/model"
	helper "videoach_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnsureClubManager loads the club and checks that actor manages it. Admins manage every club.
func EnsureClubManager(ctx context.Context, db *gorm.DB, clubID uuid.UUID, actor helper.Actor) (*model.ClubModel, error) {
	var club model.ClubModel
	if err := db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && club.ClubManagerID != actor.UserID {
		return nil, helper.ErrForbidden
	}
	return &club, nil
}

func EnsureSiteManager(ctx context.Context, db *gorm.DB, siteID uuid.UUID, actor helper.Actor) (*model.SiteModel, error) {
	var site model.SiteModel
	if err := db.WithContext(ctx).First(&site, "site_id = ?", siteID).Error; err != nil {
		return nil, err
	}
	if _, err := EnsureClubManager(ctx, db, site.SiteClubID, actor); err != nil {
		return nil, err
	}
	return &site, nil
}

func EnsureRoomManager(ctx context.Context, db *gorm.DB, roomID uuid.UUID, actor helper.Actor) (*model.RoomModel, error) {
	var room model.RoomModel
	if err := db.WithContext(ctx).First(&room, "room_id = ?", roomID).Error; err != nil {
		return nil, err
	}
	if _, err := EnsureClubManager(ctx, db, room.RoomClubID, actor); err != nil {
		return nil, err
	}
	return &room, nil
}

func EnsureActivityManager(ctx context.Context, db *gorm.DB, activityID uuid.UUID, actor helper.Actor) (*model.ActivityModel, error) {
	var a model.ActivityModel
	if err := db.WithContext(ctx).First(&a, "activity_id = ?", activityID).Error; err != nil {
		return nil, err
	}
	if _, err := EnsureClubManager(ctx, db, a.ActivityClubID, actor); err != nil {
		return nil, err
	}
	return &a, nil
}
