package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/plannings/dto"
	planningModel "videoach_backend/internals/features/plannings/model"
	subService "videoach_backend/internals/features/subscriptions/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"
	"videoach_backend/internals/helpers/qr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotEntitled   = fmt.Errorf("%w: no subscription grants this activity", helper.ErrForbidden)
	ErrRoomFull      = fmt.Errorf("%w: room is full", helper.ErrConflict)
	ErrAlreadyBooked = fmt.Errorf("%w: already booked", helper.ErrConflict)
)

var (
	slotColumns = subService.Columns{
		Group:    "activities.activity_group_id",
		Activity: "planning_activities.planning_activity_activity_id",
		Site:     "planning_activities.planning_activity_site_id",
		Room:     "planning_activities.planning_activity_room_id",
	}
	noCalendarColumns = subService.Columns{
		Group:    "activities.activity_group_id",
		Activity: "activities.activity_id",
	}
)

type ReservationService struct {
	DB    *gorm.DB
	Cache cache.Store
	QR    *qr.Generator
	Now   func() time.Time
}

func NewReservationService(db *gorm.DB, store cache.Store, gen *qr.Generator) *ReservationService {
	return &ReservationService{DB: db, Cache: store, QR: gen, Now: time.Now}
}

func (s *ReservationService) revalidate(ctx context.Context, userID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagPlanning},
		cache.Revalidation{Tag: cache.TagUser, UserID: userID.String()},
	)
}

// GetMemberDailyPlanning returns, for each running planning of the member's clubs, the slots of
// date's weekday and the no-calendar activities the member's subscriptions grant, each with the
// member's reservations from date on.
func (s *ReservationService) GetMemberDailyPlanning(ctx context.Context, memberID uuid.UUID, date time.Time) ([]dto.DailyPlanning, error) {
	if memberID == uuid.Nil || date.IsZero() {
		return nil, helper.ErrInvalidInput
	}
	key := fmt.Sprintf("planning:member:%s:%s", memberID, date.UTC().Format(time.RFC3339))
	return cache.Remember(ctx, s.Cache, key, []string{cache.GlobalTag(cache.TagPlanning)}, func() ([]dto.DailyPlanning, error) {
		return s.memberDailyPlanning(ctx, memberID, date)
	})
}

func (s *ReservationService) memberDailyPlanning(ctx context.Context, memberID uuid.UUID, date time.Time) ([]dto.DailyPlanning, error) {
	out := []dto.DailyPlanning{}
	subs, err := subService.MemberSubscriptions(ctx, s.DB, memberID, nil)
	if err != nil {
		return nil, err
	}
	clubIDs, byClub := subService.GroupByClub(subs)
	if len(clubIDs) == 0 {
		return out, nil
	}
	db := s.DB.WithContext(ctx)

	var plannings []planningModel.PlanningModel
	err = db.Preload("Club").
		Where("planning_club_id IN ? AND planning_start_date <= ?", clubIDs, s.Now()).
		Where("planning_end_date IS NULL OR planning_end_date >= ?", dbtime.StartOfDay(date)).
		Order("planning_start_date ASC").
		Find(&plannings).Error
	if err != nil {
		return nil, err
	}
	day := dbtime.DayName(date)

	for _, p := range plannings {
		filter := subService.BuildPlanningFilter(byClub[p.PlanningClubID])

		var slots []planningModel.PlanningActivityModel
		q := db.Joins("JOIN activities ON activities.activity_id = planning_activities.planning_activity_activity_id").
			Where("planning_activities.planning_activity_planning_id = ? AND planning_activities.planning_activity_day = ?", p.PlanningID, day)
		err := filter.Apply(q, slotColumns).
			Preload("Activity").Preload("Coach").Preload("Room").Preload("Site").
			Order("planning_activities.planning_activity_start_time ASC").
			Find(&slots).Error
		if err != nil {
			return nil, err
		}
		booked, err := s.memberSlotReservations(ctx, memberID, slotIDs(slots), date)
		if err != nil {
			return nil, err
		}
		dp := dto.DailyPlanning{
			PlanningModel:  p,
			Activities:     make([]dto.DailyPlanningActivity, 0, len(slots)),
			WithNoCalendar: []dto.NoCalendarActivity{},
		}
		for _, sl := range slots {
			refs := booked[sl.PlanningActivityID]
			if refs == nil {
				refs = []dto.ReservationRef{}
			}
			dp.Activities = append(dp.Activities, dto.DailyPlanningActivity{PlanningActivityModel: sl, Reservations: refs})
		}

		var free []clubModel.ActivityModel
		q = db.Model(&clubModel.ActivityModel{}).
			Where("activities.activity_club_id = ? AND activities.activity_no_calendar = true", p.PlanningClubID)
		err = filter.NoCalendar().Apply(q, noCalendarColumns).
			Preload("Rooms").
			Order("activities.activity_name ASC").
			Find(&free).Error
		if err != nil {
			return nil, err
		}
		freeBooked, err := s.memberActivityReservations(ctx, memberID, free, date)
		if err != nil {
			return nil, err
		}
		for _, a := range free {
			nc := dto.NoCalendarActivity{ActivityModel: a, Rooms: []dto.NoCalendarRoom{}, Reservations: []dto.ReservationRef{}}
			for _, r := range a.Rooms {
				nc.Rooms = append(nc.Rooms, dto.NoCalendarRoom{ID: r.RoomID, Name: r.RoomName, Capacity: r.RoomCapacity, Reservation: r.RoomReservation})
			}
			if refs := freeBooked[a.ActivityID]; refs != nil {
				nc.Reservations = refs
			}
			dp.WithNoCalendar = append(dp.WithNoCalendar, nc)
		}
		out = append(out, dp)
	}
	return out, nil
}

func (s *ReservationService) memberSlotReservations(ctx context.Context, memberID uuid.UUID, ids []uuid.UUID, from time.Time) (map[uuid.UUID][]dto.ReservationRef, error) {
	out := map[uuid.UUID][]dto.ReservationRef{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []planningModel.ReservationModel
	err := s.DB.WithContext(ctx).
		Where("reservation_user_id = ? AND reservation_planning_activity_id IN ? AND reservation_date >= ?", memberID, ids, from).
		Order("reservation_date ASC").
		Find(&rows).Error
	for _, r := range rows {
		out[*r.ReservationPlanningActivityID] = append(out[*r.ReservationPlanningActivityID], dto.ReservationRef{
			ID: *r.ReservationPlanningActivityID, Date: r.ReservationDate,
		})
	}
	return out, err
}

func (s *ReservationService) memberActivityReservations(ctx context.Context, memberID uuid.UUID, activities []clubModel.ActivityModel, from time.Time) (map[uuid.UUID][]dto.ReservationRef, error) {
	out := map[uuid.UUID][]dto.ReservationRef{}
	if len(activities) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ActivityID)
	}
	var rows []planningModel.ReservationModel
	err := s.DB.WithContext(ctx).Preload("Room").
		Where("reservation_user_id = ? AND reservation_activity_id IN ? AND reservation_date >= ?", memberID, ids, from).
		Order("reservation_date ASC").
		Find(&rows).Error
	for _, r := range rows {
		ref := dto.ReservationRef{ID: *r.ReservationActivityID, Date: r.ReservationDate}
		if r.Room != nil {
			ref.RoomName = r.Room.RoomName
		}
		out[*r.ReservationActivityID] = append(out[*r.ReservationActivityID], ref)
	}
	return out, err
}

func (s *ReservationService) entitled(ctx context.Context, memberID, clubID uuid.UUID, t subService.Target, noCalendar bool) error {
	subs, err := subService.MemberSubscriptions(ctx, s.DB, memberID, &clubID)
	if err != nil {
		return err
	}
	f := subService.BuildPlanningFilter(subs)
	if noCalendar {
		f = f.NoCalendar()
	}
	if !f.Matches(t) {
		return ErrNotEntitled
	}
	return nil
}

// lockRoom takes the room row for the rest of tx so concurrent bookings count one after the other.
func lockRoom(tx *gorm.DB, roomID uuid.UUID) (*clubModel.RoomModel, error) {
	var room clubModel.RoomModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "room_id = ?", roomID).Error; err != nil {
		return nil, err
	}
	if room.RoomUnavailable {
		return nil, fmt.Errorf("%w: room is unavailable", helper.ErrConflict)
	}
	return &room, nil
}

func full(room *clubModel.RoomModel, q *gorm.DB) error {
	if room.RoomCapacity <= 0 {
		return nil
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n >= int64(room.RoomCapacity) {
		return ErrRoomFull
	}
	return nil
}

// alreadyBooked refuses when q, scoped to one member, finds a reservation.
func alreadyBooked(q *gorm.DB) error {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyBooked
	}
	return nil
}

func dayBounds(q *gorm.DB, date time.Time) *gorm.DB {
	return q.Where("reservation_date BETWEEN ? AND ?", dbtime.StartOfDay(date), dbtime.EndOfDay(date))
}

// CreatePlanningReservation books a slot on date. date must fall on the slot's weekday while its
// planning runs, the member must be entitled to it and the room must have room left that day.
func (s *ReservationService) CreatePlanningReservation(ctx context.Context, memberID, planningActivityID uuid.UUID, date time.Time) (*planningModel.ReservationModel, error) {
	if memberID == uuid.Nil || planningActivityID == uuid.Nil || date.IsZero() {
		return nil, helper.ErrInvalidInput
	}
	var slot planningModel.PlanningActivityModel
	err := s.DB.WithContext(ctx).Preload("Activity").First(&slot, "planning_activity_id = ?", planningActivityID).Error
	if err != nil {
		return nil, err
	}
	var p planningModel.PlanningModel
	if err := s.DB.WithContext(ctx).First(&p, "planning_id = ?", slot.PlanningActivityPlanningID).Error; err != nil {
		return nil, err
	}
	if slot.PlanningActivityDay != dbtime.DayName(date) || !p.ActiveOn(date) {
		return nil, fmt.Errorf("%w: no session on that date", helper.ErrInvalidInput)
	}
	if slot.Activity == nil {
		return nil, helper.ErrNotFound
	}
	t := subService.Target{
		ActivityID: slot.PlanningActivityActivityID,
		GroupID:    slot.Activity.ActivityGroupID,
		SiteID:     slot.PlanningActivitySiteID,
		RoomID:     slot.PlanningActivityRoomID,
	}
	if err := s.entitled(ctx, memberID, p.PlanningClubID, t, false); err != nil {
		return nil, err
	}

	res := planningModel.ReservationModel{
		ReservationUserID:             memberID,
		ReservationDate:               date,
		ReservationPlanningActivityID: &planningActivityID,
		ReservationRoomID:             slot.PlanningActivityRoomID,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the slot row serializes bookings of slots without a room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&planningModel.PlanningActivityModel{}, "planning_activity_id = ?", planningActivityID).Error; err != nil {
			return err
		}
		var room *clubModel.RoomModel
		if slot.PlanningActivityRoomID != nil {
			r, err := lockRoom(tx, *slot.PlanningActivityRoomID)
			if err != nil {
				return err
			}
			room = r
		}
		sameDay := func() *gorm.DB {
			return dayBounds(tx.Model(&planningModel.ReservationModel{}).
				Where("reservation_planning_activity_id = ?", planningActivityID), date)
		}
		if err := alreadyBooked(sameDay().Where("reservation_user_id = ?", memberID)); err != nil {
			return err
		}
		if room != nil {
			if err := full(room, sameDay()); err != nil {
				return err
			}
		}
		return tx.Create(&res).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, memberID)
	return &res, nil
}

// CreateActivityReservation books a no-calendar activity in one of its rooms.
func (s *ReservationService) CreateActivityReservation(ctx context.Context, memberID, activityID, roomID uuid.UUID, date time.Time) (*planningModel.ReservationModel, error) {
	if memberID == uuid.Nil || activityID == uuid.Nil || roomID == uuid.Nil || date.IsZero() {
		return nil, helper.ErrInvalidInput
	}
	var a clubModel.ActivityModel
	err := s.DB.WithContext(ctx).
		Preload("Rooms", "rooms.room_id = ?", roomID).
		First(&a, "activity_id = ?", activityID).Error
	if err != nil {
		return nil, err
	}
	if !a.ActivityNoCalendar || len(a.Rooms) == 0 {
		return nil, fmt.Errorf("%w: activity is not bookable in that room", helper.ErrInvalidInput)
	}
	room := a.Rooms[0]
	t := subService.Target{ActivityID: a.ActivityID, GroupID: a.ActivityGroupID, SiteID: room.RoomSiteID, RoomID: &room.RoomID}
	if err := s.entitled(ctx, memberID, a.ActivityClubID, t, true); err != nil {
		return nil, err
	}

	res := planningModel.ReservationModel{
		ReservationUserID:     memberID,
		ReservationDate:       date,
		ReservationActivityID: &activityID,
		ReservationRoomID:     &roomID,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		inRoom := func() *gorm.DB {
			return dayBounds(tx.Model(&planningModel.ReservationModel{}).
				Where("reservation_room_id = ? AND reservation_activity_id IS NOT NULL", roomID), date)
		}
		mine := inRoom().Where("reservation_user_id = ? AND reservation_activity_id = ?", memberID, activityID)
		if err := alreadyBooked(mine); err != nil {
			return err
		}
		if err := full(locked, inRoom()); err != nil {
			return err
		}
		return tx.Create(&res).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, memberID)
	return &res, nil
}

func (s *ReservationService) owned(ctx context.Context, actor helper.Actor, id uuid.UUID) (*planningModel.ReservationModel, error) {
	var r planningModel.ReservationModel
	if err := s.DB.WithContext(ctx).First(&r, "reservation_id = ?", id).Error; err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && r.ReservationUserID != actor.UserID {
		return nil, helper.ErrForbidden
	}
	return &r, nil
}

// DeleteReservation cancels a reservation of the actor. Admins may cancel any.
func (s *ReservationService) DeleteReservation(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if id == uuid.Nil {
		return helper.ErrInvalidInput
	}
	r, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&planningModel.ReservationModel{}, "reservation_id = ?", id).Error; err != nil {
		return err
	}
	s.revalidate(ctx, r.ReservationUserID)
	return nil
}

// ReservationQR renders the signed check-in code of a reservation.
func (s *ReservationService) ReservationQR(ctx context.Context, actor helper.Actor, id uuid.UUID) ([]byte, error) {
	r, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.QR == nil {
		return nil, errors.New("check-in codes are not configured")
	}
	return s.QR.PNG(qr.CheckIn{ReservationID: r.ReservationID, UserID: r.ReservationUserID, Date: r.ReservationDate})
}

// CheckIn verifies a scanned code and returns the reservation it points to.
func (s *ReservationService) CheckIn(ctx context.Context, token string) (*planningModel.ReservationModel, error) {
	if s.QR == nil {
		return nil, errors.New("check-in codes are not configured")
	}
	ci, err := s.QR.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	var r planningModel.ReservationModel
	err = s.DB.WithContext(ctx).
		Preload("PlanningActivity.Activity").Preload("Activity").Preload("Room").
		First(&r, "reservation_id = ? AND reservation_user_id = ?", ci.ReservationID, ci.UserID).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}
