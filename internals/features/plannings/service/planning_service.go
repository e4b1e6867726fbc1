package service

import (
	"context"
	"fmt"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/plannings/dto"
	planningModel "videoach_backend/internals/features/plannings/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanningService struct {
	DB    *gorm.DB
	Cache cache.Store
	Now   func() time.Time
}

func NewPlanningService(db *gorm.DB, store cache.Store) *PlanningService {
	return &PlanningService{DB: db, Cache: store, Now: time.Now}
}

func (s *PlanningService) revalidate(ctx context.Context) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPlanning})
}

func withSlots(db *gorm.DB) *gorm.DB {
	return db.Preload("Activities", func(q *gorm.DB) *gorm.DB {
		return q.Order("planning_activity_day ASC, planning_activity_start_time ASC")
	}).
		Preload("Activities.Activity").
		Preload("Activities.Site").
		Preload("Activities.Room").
		Preload("Activities.Coach")
}

func (s *PlanningService) ListForClub(ctx context.Context, actor helper.Actor, clubID uuid.UUID) ([]planningModel.PlanningModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	out := []planningModel.PlanningModel{}
	err := s.DB.WithContext(ctx).
		Where("planning_club_id = ?", clubID).
		Order("planning_start_date DESC").
		Find(&out).Error
	return out, err
}

func (s *PlanningService) GetByID(ctx context.Context, id uuid.UUID) (*planningModel.PlanningModel, error) {
	var p planningModel.PlanningModel
	if err := withSlots(s.DB.WithContext(ctx)).First(&p, "planning_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlanningService) ensurePlanning(ctx context.Context, id uuid.UUID, actor helper.Actor) (*planningModel.PlanningModel, error) {
	var p planningModel.PlanningModel
	if err := s.DB.WithContext(ctx).First(&p, "planning_id = ?", id).Error; err != nil {
		return nil, err
	}
	if _, err := clubService.EnsureClubManager(ctx, s.DB, p.PlanningClubID, actor); err != nil {
		return nil, err
	}
	return &p, nil
}

// placeInClub checks that the optional site and room belong to the club (and the room to the site).
func (s *PlanningService) placeInClub(ctx context.Context, clubID uuid.UUID, siteID, roomID *uuid.UUID) error {
	db := s.DB.WithContext(ctx)
	if siteID != nil {
		var n int64
		if err := db.Model(&clubModel.SiteModel{}).Where("site_id = ? AND site_club_id = ?", *siteID, clubID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: site is not in the club", helper.ErrInvalidInput)
		}
	}
	if roomID != nil {
		q := db.Model(&clubModel.RoomModel{}).Where("room_id = ? AND room_club_id = ?", *roomID, clubID)
		if siteID != nil {
			q = q.Where("room_site_id = ?", *siteID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: room is not in the club", helper.ErrInvalidInput)
		}
	}
	return nil
}

func parsePeriod(in dto.PlanningRequest) (time.Time, *time.Time, error) {
	start, err := dbtime.ParseDate(in.StartDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: planning_start_date", helper.ErrInvalidInput)
	}
	if in.EndDate == "" {
		return start, nil, nil
	}
	end, err := dbtime.ParseDate(in.EndDate)
	if err != nil || end.Before(start) {
		return time.Time{}, nil, fmt.Errorf("%w: planning_end_date", helper.ErrInvalidInput)
	}
	return start, &end, nil
}

func (s *PlanningService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.PlanningRequest) (*planningModel.PlanningModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	start, end, err := parsePeriod(in)
	if err != nil {
		return nil, err
	}
	if err := s.placeInClub(ctx, clubID, in.SiteID, in.RoomID); err != nil {
		return nil, err
	}
	p := planningModel.PlanningModel{
		PlanningClubID:    clubID,
		PlanningName:      in.Name,
		PlanningStartDate: start,
		PlanningEndDate:   end,
		PlanningSiteID:    in.SiteID,
		PlanningRoomID:    in.RoomID,
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return &p, nil
}

func (s *PlanningService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.PlanningRequest) (*planningModel.PlanningModel, error) {
	p, err := s.ensurePlanning(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	start, end, err := parsePeriod(in)
	if err != nil {
		return nil, err
	}
	if err := s.placeInClub(ctx, p.PlanningClubID, in.SiteID, in.RoomID); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(&planningModel.PlanningModel{}).
		Where("planning_id = ?", id).
		Updates(map[string]any{
			"planning_name":       in.Name,
			"planning_start_date": start,
			"planning_end_date":   end,
			"planning_site_id":    in.SiteID,
			"planning_room_id":    in.RoomID,
		}).Error
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return s.GetByID(ctx, id)
}

// Delete drops the planning, its slots and the reservations made on them.
func (s *PlanningService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.ensurePlanning(ctx, id, actor); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := tx.Model(&planningModel.PlanningActivityModel{}).
			Select("planning_activity_id").
			Where("planning_activity_planning_id = ?", id)
		if err := tx.Where("reservation_planning_activity_id IN (?)", slots).
			Delete(&planningModel.ReservationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("planning_activity_planning_id = ?", id).
			Delete(&planningModel.PlanningActivityModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&planningModel.PlanningModel{}, "planning_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// Duplicate copies a planning and its slots under a new name and start date. Reservations stay behind.
func (s *PlanningService) Duplicate(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.DuplicatePlanningRequest) (*planningModel.PlanningModel, error) {
	if _, err := s.ensurePlanning(ctx, id, actor); err != nil {
		return nil, err
	}
	src, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	start, err := dbtime.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: planning_start_date", helper.ErrInvalidInput)
	}
	name := in.Name
	if name == "" {
		name = src.PlanningName
	}

	cp := planningModel.PlanningModel{
		PlanningClubID:    src.PlanningClubID,
		PlanningName:      name,
		PlanningStartDate: start,
		PlanningSiteID:    src.PlanningSiteID,
		PlanningRoomID:    src.PlanningRoomID,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cp).Error; err != nil {
			return err
		}
		if len(src.Activities) == 0 {
			return nil
		}
		slots := make([]planningModel.PlanningActivityModel, 0, len(src.Activities))
		for _, a := range src.Activities {
			slots = append(slots, planningModel.PlanningActivityModel{
				PlanningActivityPlanningID: cp.PlanningID,
				PlanningActivityActivityID: a.PlanningActivityActivityID,
				PlanningActivitySiteID:     a.PlanningActivitySiteID,
				PlanningActivityRoomID:     a.PlanningActivityRoomID,
				PlanningActivityCoachID:    a.PlanningActivityCoachID,
				PlanningActivityDay:        a.PlanningActivityDay,
				PlanningActivityStartTime:  a.PlanningActivityStartTime,
				PlanningActivityDuration:   a.PlanningActivityDuration,
			})
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return s.GetByID(ctx, cp.PlanningID)
}

func (s *PlanningService) validateSlot(ctx context.Context, clubID uuid.UUID, in dto.PlanningActivityRequest) error {
	if _, err := dbtime.ParseHHMM(in.StartTime); err != nil {
		return fmt.Errorf("%w: start_time", helper.ErrInvalidInput)
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&clubModel.ActivityModel{}).
		Where("activity_id = ? AND activity_club_id = ?", in.ActivityID, clubID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: activity is not in the club", helper.ErrInvalidInput)
	}
	siteID := in.SiteID
	if err := s.placeInClub(ctx, clubID, &siteID, in.RoomID); err != nil {
		return err
	}
	if in.CoachID != nil {
		if err := s.DB.WithContext(ctx).Model(&clubModel.ClubCoachModel{}).
			Where("club_id = ? AND user_id = ?", clubID, *in.CoachID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: coach does not work for the club", helper.ErrInvalidInput)
		}
	}
	return nil
}

func (s *PlanningService) CreateActivity(ctx context.Context, actor helper.Actor, planningID uuid.UUID, in dto.PlanningActivityRequest) (*planningModel.PlanningActivityModel, error) {
	p, err := s.ensurePlanning(ctx, planningID, actor)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(ctx, p.PlanningClubID, in); err != nil {
		return nil, err
	}
	m := in.ToModel(planningID)
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return &m, nil
}

func (s *PlanningService) ensureSlot(ctx context.Context, id uuid.UUID, actor helper.Actor) (*planningModel.PlanningActivityModel, *planningModel.PlanningModel, error) {
	var pa planningModel.PlanningActivityModel
	if err := s.DB.WithContext(ctx).First(&pa, "planning_activity_id = ?", id).Error; err != nil {
		return nil, nil, err
	}
	p, err := s.ensurePlanning(ctx, pa.PlanningActivityPlanningID, actor)
	if err != nil {
		return nil, nil, err
	}
	return &pa, p, nil
}

func (s *PlanningService) UpdateActivity(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.PlanningActivityRequest) (*planningModel.PlanningActivityModel, error) {
	pa, p, err := s.ensureSlot(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(ctx, p.PlanningClubID, in); err != nil {
		return nil, err
	}
	m := in.ToModel(pa.PlanningActivityPlanningID)
	err = s.DB.WithContext(ctx).Model(&planningModel.PlanningActivityModel{}).
		Where("planning_activity_id = ?", id).
		Updates(map[string]any{
			"planning_activity_activity_id": m.PlanningActivityActivityID,
			"planning_activity_site_id":     m.PlanningActivitySiteID,
			"planning_activity_room_id":     m.PlanningActivityRoomID,
			"planning_activity_coach_id":    m.PlanningActivityCoachID,
			"planning_activity_day":         m.PlanningActivityDay,
			"planning_activity_start_time":  m.PlanningActivityStartTime,
			"planning_activity_duration":    m.PlanningActivityDuration,
		}).Error
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	m.PlanningActivityID = id
	return &m, nil
}

func (s *PlanningService) DeleteActivity(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, _, err := s.ensureSlot(ctx, id, actor); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_planning_activity_id = ?", id).
			Delete(&planningModel.ReservationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&planningModel.PlanningActivityModel{}, "planning_activity_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// activeOn limits plannings to those running on day.
func activeOn(q *gorm.DB, day time.Time) *gorm.DB {
	return q.Where("plannings.planning_start_date <= ?", dbtime.EndOfDay(day)).
		Where("plannings.planning_end_date IS NULL OR plannings.planning_end_date >= ?", dbtime.StartOfDay(day))
}

// GetClubDailyPlanning lists the slots of every planning of the club running on day, with booking counts.
func (s *PlanningService) GetClubDailyPlanning(ctx context.Context, clubID uuid.UUID, day time.Time) ([]dto.ClubDaySlot, error) {
	key := fmt.Sprintf("planning:club:%s:%s", clubID, day.Format("2006-01-02"))
	return cache.Remember(ctx, s.Cache, key, []string{cache.GlobalTag(cache.TagPlanning)}, func() ([]dto.ClubDaySlot, error) {
		db := s.DB.WithContext(ctx)
		var slots []planningModel.PlanningActivityModel
		q := db.Joins("JOIN plannings ON plannings.planning_id = planning_activities.planning_activity_planning_id").
			Where("plannings.planning_club_id = ? AND planning_activities.planning_activity_day = ?", clubID, dbtime.DayName(day))
		err := activeOn(q, day).
			Preload("Activity").Preload("Site").Preload("Room").Preload("Coach").
			Order("planning_activities.planning_activity_start_time ASC").
			Find(&slots).Error
		if err != nil {
			return nil, err
		}
		counts, err := s.countReservations(ctx, slotIDs(slots), day)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ClubDaySlot, 0, len(slots))
		for _, sl := range slots {
			out = append(out, dto.ClubDaySlot{PlanningActivityModel: sl, Reserved: counts[sl.PlanningActivityID]})
		}
		return out, nil
	})
}

// GetCoachPlanningForClub lists the weekly slots a coach runs in the club's current plannings.
func (s *PlanningService) GetCoachPlanningForClub(ctx context.Context, clubID, coachID uuid.UUID) ([]planningModel.PlanningActivityModel, error) {
	key := fmt.Sprintf("planning:coach:%s:%s", clubID, coachID)
	return cache.Remember(ctx, s.Cache, key, []string{cache.GlobalTag(cache.TagPlanning)}, func() ([]planningModel.PlanningActivityModel, error) {
		out := []planningModel.PlanningActivityModel{}
		q := s.DB.WithContext(ctx).
			Joins("JOIN plannings ON plannings.planning_id = planning_activities.planning_activity_planning_id").
			Where("plannings.planning_club_id = ? AND planning_activities.planning_activity_coach_id = ?", clubID, coachID)
		err := activeOn(q, s.Now()).
			Preload("Activity").Preload("Site").Preload("Room").
			Order("planning_activities.planning_activity_day ASC, planning_activities.planning_activity_start_time ASC").
			Find(&out).Error
		return out, err
	})
}

func slotIDs(slots []planningModel.PlanningActivityModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.PlanningActivityID)
	}
	return ids
}

func (s *PlanningService) countReservations(ctx context.Context, ids []uuid.UUID, day time.Time) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID    uuid.UUID
		Total int64
	}
	err := s.DB.WithContext(ctx).Model(&planningModel.ReservationModel{}).
		Select("reservation_planning_activity_id AS id, COUNT(*) AS total").
		Where("reservation_planning_activity_id IN ?", ids).
		Where("reservation_date BETWEEN ? AND ?", dbtime.StartOfDay(day), dbtime.EndOfDay(day)).
		Group("reservation_planning_activity_id").
		Scan(&rows).Error
	for _, r := range rows {
		out[r.ID] = r.Total
	}
	return out, err
}
