package service

import (
	"context"
	"fmt"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/pricing/plans"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomService struct {
	DB     *gorm.DB
	Cache  cache.Store
	Limits LimitsResolver
}

func NewRoomService(db *gorm.DB, store cache.Store, limits LimitsResolver) *RoomService {
	return &RoomService{DB: db, Cache: store, Limits: limits}
}

func (s *RoomService) revalidate(ctx context.Context, room *model.RoomModel) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagRoom, ID: room.RoomID.String()},
		cache.Revalidation{Tag: cache.TagSite, ID: room.RoomSiteID.String()},
		cache.Revalidation{Tag: cache.TagPlanning},
	)
}

// ListForSite is empty when the manager's plan has no room management.
func (s *RoomService) ListForSite(ctx context.Context, actor helper.Actor, siteID uuid.UUID) ([]model.RoomModel, error) {
	site, err := EnsureSiteManager(ctx, s.DB, siteID, actor)
	if err != nil {
		return nil, err
	}
	club, err := EnsureClubManager(ctx, s.DB, site.SiteClubID, actor)
	if err != nil {
		return nil, err
	}
	limits, err := s.Limits.LimitsForUserID(ctx, club.ClubManagerID)
	if err != nil {
		return nil, err
	}
	out := []model.RoomModel{}
	if limits.MaxRooms == 0 {
		return out, nil
	}
	err = s.DB.WithContext(ctx).
		Preload("Activities").
		Where("room_site_id = ?", siteID).
		Order("room_name ASC").
		Find(&out).Error
	return out, err
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*model.RoomModel, error) {
	var r model.RoomModel
	if err := s.DB.WithContext(ctx).Preload("Activities").First(&r, "room_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoomService) Create(ctx context.Context, actor helper.Actor, siteID uuid.UUID, in dto.RoomRequest) (*model.RoomModel, error) {
	site, err := EnsureSiteManager(ctx, s.DB, siteID, actor)
	if err != nil {
		return nil, err
	}
	club, err := EnsureClubManager(ctx, s.DB, site.SiteClubID, actor)
	if err != nil {
		return nil, err
	}
	limits, err := s.Limits.LimitsForUserID(ctx, club.ClubManagerID)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.RoomModel{}).Where("room_site_id = ?", siteID).Count(&count).Error; err != nil {
		return nil, err
	}
	if !plans.Allows(limits.MaxRooms, count) {
		return nil, fmt.Errorf("%w: your plan allows %d room(s) per site", helper.ErrLimitReached, limits.MaxRooms)
	}

	room := model.RoomModel{
		RoomSiteID:       siteID,
		RoomClubID:       site.SiteClubID,
		RoomName:         in.Name,
		RoomReservation:  in.Reservation,
		RoomCapacity:     in.Capacity,
		RoomUnavailable:  in.Unavailable,
		RoomOpenWithClub: in.OpenWithClub == nil || *in.OpenWithClub,
		RoomOpenWithSite: in.OpenWithSite == nil || *in.OpenWithSite,
	}
	if room.RoomReservation == "" {
		room.RoomReservation = model.ReservationNone
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, &room)
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.RoomRequest) (*model.RoomModel, error) {
	room, err := EnsureRoomManager(ctx, s.DB, id, actor)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"room_name":        in.Name,
		"room_capacity":    in.Capacity,
		"room_unavailable": in.Unavailable,
	}
	if in.Reservation != "" {
		updates["room_reservation"] = in.Reservation
	}
	if in.OpenWithClub != nil {
		updates["room_open_with_club"] = *in.OpenWithClub
	}
	if in.OpenWithSite != nil {
		updates["room_open_with_site"] = *in.OpenWithSite
	}
	if err := s.DB.WithContext(ctx).Model(room).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, room)
	return s.GetByID(ctx, id)
}

func (s *RoomService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	room, err := EnsureRoomManager(ctx, s.DB, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_activities WHERE room_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx, room)
	return nil
}

// AffectActivity makes an activity of the same club available in the room.
func (s *RoomService) AffectActivity(ctx context.Context, actor helper.Actor, roomID, activityID uuid.UUID) (*model.RoomModel, error) {
	room, err := EnsureRoomManager(ctx, s.DB, roomID, actor)
	if err != nil {
		return nil, err
	}
	var a model.ActivityModel
	if err := s.DB.WithContext(ctx).First(&a, "activity_id = ?", activityID).Error; err != nil {
		return nil, err
	}
	if a.ActivityClubID != room.RoomClubID {
		return nil, fmt.Errorf("%w: activity belongs to another club", helper.ErrInvalidInput)
	}
	if err := s.DB.WithContext(ctx).Model(room).Association("Activities").Append(&a); err != nil {
		return nil, err
	}
	s.revalidate(ctx, room)
	return s.GetByID(ctx, roomID)
}

func (s *RoomService) RemoveActivity(ctx context.Context, actor helper.Actor, roomID, activityID uuid.UUID) (*model.RoomModel, error) {
	room, err := EnsureRoomManager(ctx, s.DB, roomID, actor)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(room).Association("Activities").
		Delete(&model.ActivityModel{ActivityID: activityID}); err != nil {
		return nil, err
	}
	s.revalidate(ctx, room)
	return s.GetByID(ctx, roomID)
}
