package service

import (
	"context"
	"fmt"
	"strings"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityService struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewActivityService(db *gorm.DB, store cache.Store) *ActivityService {
	return &ActivityService{DB: db, Cache: store}
}

func (s *ActivityService) revalidate(ctx context.Context, clubID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagActivity, ID: clubID.String()},
		cache.Revalidation{Tag: cache.TagClub, ID: clubID.String()},
		cache.Revalidation{Tag: cache.TagSite},
		cache.Revalidation{Tag: cache.TagPlanning},
	)
}

// =======================
// Activities
// =======================

func (s *ActivityService) ListForClub(ctx context.Context, clubID uuid.UUID) ([]model.ActivityModel, error) {
	tags := []string{cache.IDTag(clubID.String(), cache.TagActivity)}
	return cache.Remember(ctx, s.Cache, "activity:club:"+clubID.String(), tags, func() ([]model.ActivityModel, error) {
		var out []model.ActivityModel
		err := s.DB.WithContext(ctx).
			Preload("Group").
			Preload("Rooms").
			Where("activity_club_id = ?", clubID).
			Order("activity_name ASC").
			Find(&out).Error
		return out, err
	})
}

func (s *ActivityService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.ActivityRequest) (*model.ActivityModel, error) {
	if _, err := EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	if err := s.ensureGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}
	a := model.ActivityModel{
		ActivityClubID:              clubID,
		ActivityGroupID:             in.GroupID,
		ActivityName:                strings.TrimSpace(in.Name),
		ActivityNoCalendar:          in.NoCalendar,
		ActivityReservationDuration: in.ReservationDuration,
	}
	if a.ActivityReservationDuration == 0 {
		a.ActivityReservationDuration = 60
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, clubID)
	return &a, nil
}

func (s *ActivityService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.ActivityRequest) (*model.ActivityModel, error) {
	a, err := EnsureActivityManager(ctx, s.DB, id, actor)
	if err != nil {
		return nil, err
	}
	if err := s.ensureGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"activity_name":        strings.TrimSpace(in.Name),
		"activity_group_id":    in.GroupID,
		"activity_no_calendar": in.NoCalendar,
	}
	if in.ReservationDuration > 0 {
		updates["activity_reservation_duration"] = in.ReservationDuration
	}
	if err := s.DB.WithContext(ctx).Model(a).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, a.ActivityClubID)
	return a, s.DB.WithContext(ctx).Preload("Group").First(a, "activity_id = ?", id).Error
}

func (s *ActivityService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	a, err := EnsureActivityManager(ctx, s.DB, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_activities WHERE activity_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(a).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx, a.ActivityClubID)
	return nil
}

// UpdateClubActivities makes the club's activities exactly items: activities not listed are
// deleted, listed ones missing from the club are created. Matching is on group and name.
func (s *ActivityService) UpdateClubActivities(ctx context.Context, actor helper.Actor, clubID uuid.UUID, items []dto.ClubActivityItem) ([]model.ActivityModel, error) {
	if _, err := EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	key := func(g uuid.UUID, name string) string { return g.String() + "|" + strings.ToLower(strings.TrimSpace(name)) }

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []model.ActivityModel
		if err := tx.Where("activity_club_id = ?", clubID).Find(&current).Error; err != nil {
			return err
		}
		existing := make(map[string]model.ActivityModel, len(current))
		for _, a := range current {
			existing[key(a.ActivityGroupID, a.ActivityName)] = a
		}

		wanted := make(map[string]bool, len(items))
		for _, it := range items {
			k := key(it.GroupID, it.Name)
			if wanted[k] {
				continue
			}
			wanted[k] = true
			if _, ok := existing[k]; ok {
				continue
			}
			if err := s.ensureGroupTx(tx, it.GroupID); err != nil {
				return err
			}
			a := model.ActivityModel{
				ActivityClubID:              clubID,
				ActivityGroupID:             it.GroupID,
				ActivityName:                strings.TrimSpace(it.Name),
				ActivityReservationDuration: 60,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}

		var drop []uuid.UUID
		for k, a := range existing {
			if !wanted[k] {
				drop = append(drop, a.ActivityID)
			}
		}
		if len(drop) == 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM room_activities WHERE activity_id IN ?", drop).Error; err != nil {
			return err
		}
		return tx.Where("activity_id IN ?", drop).Delete(&model.ActivityModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, clubID)
	return s.ListForClub(ctx, clubID)
}

func (s *ActivityService) ensureGroup(ctx context.Context, id uuid.UUID) error {
	return s.ensureGroupTx(s.DB.WithContext(ctx), id)
}

func (s *ActivityService) ensureGroupTx(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&model.ActivityGroupModel{}).Where("activity_group_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: unknown activity group", helper.ErrInvalidInput)
	}
	return nil
}

// =======================
// Activity groups
// =======================

// GroupsForUser returns the default groups followed by the user's own.
func (s *ActivityService) GroupsForUser(ctx context.Context, userID uuid.UUID) ([]model.ActivityGroupModel, error) {
	tags := []string{cache.GlobalTag(cache.TagActivityGroup), cache.UserTag(userID.String(), cache.TagActivityGroup)}
	return cache.Remember(ctx, s.Cache, "activityGroup:user:"+userID.String(), tags, func() ([]model.ActivityGroupModel, error) {
		var out []model.ActivityGroupModel
		err := s.DB.WithContext(ctx).
			Where("activity_group_default = true OR activity_group_coach_id = ?", userID).
			Order("activity_group_default DESC").
			Order("activity_group_name ASC").
			Find(&out).Error
		return out, err
	})
}

// CreateGroup: an admin creates a default group, anyone else a group of their own.
func (s *ActivityService) CreateGroup(ctx context.Context, actor helper.Actor, in dto.ActivityGroupRequest) (*model.ActivityGroupModel, error) {
	g := model.ActivityGroupModel{ActivityGroupName: strings.TrimSpace(in.Name)}
	if actor.IsAdmin() {
		g.ActivityGroupDefault = true
	} else {
		uid := actor.UserID
		g.ActivityGroupCoachID = &uid
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, err
	}
	s.revalidateGroups(ctx, actor.UserID)
	return &g, nil
}

func (s *ActivityService) ownGroup(ctx context.Context, actor helper.Actor, id uuid.UUID) (*model.ActivityGroupModel, error) {
	var g model.ActivityGroupModel
	if err := s.DB.WithContext(ctx).First(&g, "activity_group_id = ?", id).Error; err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return &g, nil
	}
	if g.ActivityGroupDefault || g.ActivityGroupCoachID == nil || *g.ActivityGroupCoachID != actor.UserID {
		return nil, helper.ErrForbidden
	}
	return &g, nil
}

func (s *ActivityService) UpdateGroup(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.ActivityGroupRequest) (*model.ActivityGroupModel, error) {
	g, err := s.ownGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	g.ActivityGroupName = strings.TrimSpace(in.Name)
	if err := s.DB.WithContext(ctx).Model(g).Update("activity_group_name", g.ActivityGroupName).Error; err != nil {
		return nil, err
	}
	s.revalidateGroups(ctx, actor.UserID)
	return g, nil
}

// DeleteGroup refuses groups still used by an activity.
func (s *ActivityService) DeleteGroup(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	g, err := s.ownGroup(ctx, actor, id)
	if err != nil {
		return err
	}
	var used int64
	if err := s.DB.WithContext(ctx).Model(&model.ActivityModel{}).Where("activity_group_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: group is used by %d activities", helper.ErrConflict, used)
	}
	if err := s.DB.WithContext(ctx).Delete(g).Error; err != nil {
		return err
	}
	s.revalidateGroups(ctx, actor.UserID)
	return nil
}

func (s *ActivityService) revalidateGroups(ctx context.Context, userID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagActivityGroup, UserID: userID.String()})
}

