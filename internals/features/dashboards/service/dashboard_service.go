package service

import (
	"context"
	"errors"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	coachModel "videoach_backend/internals/features/coaches/model"
	coachService "videoach_backend/internals/features/coaches/service"
	eventModel "videoach_backend/internals/features/events/model"
	subModel "videoach_backend/internals/features/subscriptions/model"
	userModel "videoach_backend/internals/features/users/user/model"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRef struct {
	ID        uuid.UUID `json:"event_id"`
	Name      string    `json:"event_name"`
	StartDate time.Time `json:"event_start_date"`
}

type ClubSummary struct {
	ID     uuid.UUID  `json:"club_id"`
	Name   string     `json:"club_name"`
	Events []EventRef `json:"events"`
}

type ManagerDashboard struct {
	Clubs         []ClubSummary `json:"clubs"`
	ClubCount     int           `json:"club_count"`
	Activities    int64         `json:"activities"`
	Subscriptions int64         `json:"subscriptions"`
	Sites         int64         `json:"sites"`
	Rooms         int64         `json:"rooms"`
	Members       int64         `json:"members"`
}

type CoachDashboard struct {
	Profile        *coachModel.CoachProfileModel  `json:"profile"`
	Clubs          []clubModel.ClubModel          `json:"clubs"`
	Certifications []coachModel.CertificationModel `json:"certifications"`
	ActivityGroups []clubModel.ActivityGroupModel `json:"activity_groups"`
	Offers         []coachModel.CoachOfferModel   `json:"offers"`
}

type AdminClub struct {
	clubModel.ClubModel
	SiteCount int64 `json:"site_count"`
}

type AdminDashboard struct {
	Clubs   []AdminClub           `json:"clubs"`
	Members []userModel.UserModel `json:"members"`
}

type DashboardService struct {
	DB      *gorm.DB
	Cache   cache.Store
	Coaches *coachService.CoachService
	Certs   *coachService.CertificationService
	Now     func() time.Time
}

func NewDashboardService(db *gorm.DB, store cache.Store) *DashboardService {
	return &DashboardService{
		DB:      db,
		Cache:   store,
		Coaches: coachService.NewCoachService(db, store, nil),
		Certs:   coachService.NewCertificationService(db, store, nil),
		Now:     time.Now,
	}
}

// attachEvents spreads events, already sorted by start date, over their clubs.
func attachEvents(clubs []clubModel.ClubModel, events []eventModel.EventModel) []ClubSummary {
	byClub := make(map[uuid.UUID][]EventRef, len(clubs))
	for _, e := range events {
		byClub[e.EventClubID] = append(byClub[e.EventClubID], EventRef{ID: e.EventID, Name: e.EventName, StartDate: e.EventStartDate})
	}
	out := make([]ClubSummary, 0, len(clubs))
	for _, c := range clubs {
		ev := byClub[c.ClubID]
		if ev == nil {
			ev = []EventRef{}
		}
		out = append(out, ClubSummary{ID: c.ClubID, Name: c.ClubName, Events: ev})
	}
	return out
}

// Manager gives the counters of every club the manager runs, members counted once across clubs.
func (s *DashboardService) Manager(ctx context.Context, managerID uuid.UUID) (*ManagerDashboard, error) {
	db := s.DB.WithContext(ctx)
	var clubs []clubModel.ClubModel
	if err := db.Where("club_manager_id = ?", managerID).Order("club_name ASC").Find(&clubs).Error; err != nil {
		return nil, err
	}
	out := &ManagerDashboard{Clubs: []ClubSummary{}, ClubCount: len(clubs)}
	if len(clubs) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(clubs))
	for _, c := range clubs {
		ids = append(ids, c.ClubID)
	}

	var events []eventModel.EventModel
	if err := db.Where("event_club_id IN ? AND event_start_date >= ?", ids, dbtime.StartOfDay(s.Now())).
		Order("event_start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	out.Clubs = attachEvents(clubs, events)

	counts := []struct {
		model any
		where string
		dst   *int64
	}{
		{&clubModel.ActivityModel{}, "activity_club_id IN ?", &out.Activities},
		{&subModel.SubscriptionModel{}, "subscription_club_id IN ? AND subscription_deleted = false", &out.Subscriptions},
		{&clubModel.SiteModel{}, "site_club_id IN ?", &out.Sites},
		{&clubModel.RoomModel{}, "room_club_id IN ?", &out.Rooms},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, ids).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	err := db.Table("subscription_members AS sm").
		Joins("JOIN subscriptions s ON s.subscription_id = sm.subscription_id").
		Where("s.subscription_club_id IN ?", ids).
		Distinct("sm.user_id").
		Count(&out.Members).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) Coach(ctx context.Context, coachID uuid.UUID) (*CoachDashboard, error) {
	out := &CoachDashboard{}
	p, err := s.Coaches.GetProfile(ctx, coachID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, err
	default:
		out.Profile = p
	}
	if out.Clubs, err = s.Coaches.ClubsOfCoach(ctx, coachID); err != nil {
		return nil, err
	}
	if out.Certifications, err = s.Certs.ListForCoach(ctx, coachID); err != nil {
		return nil, err
	}
	if out.Offers, err = s.Coaches.ListOffers(ctx, coachID); err != nil {
		return nil, err
	}
	out.ActivityGroups = []clubModel.ActivityGroupModel{}
	err = s.DB.WithContext(ctx).Where("activity_group_coach_id = ?", coachID).
		Order("activity_group_name ASC").Find(&out.ActivityGroups).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Admin lists every club with its site count and every user.
func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	tags := []string{cache.GlobalTag(cache.TagClub), cache.GlobalTag(cache.TagUser)}
	d, err := cache.Remember(ctx, s.Cache, "dashboard:admin", tags, func() (AdminDashboard, error) {
		db := s.DB.WithContext(ctx)
		out := AdminDashboard{Clubs: []AdminClub{}, Members: []userModel.UserModel{}}
		var clubs []clubModel.ClubModel
		if err := db.Order("club_name ASC").Find(&clubs).Error; err != nil {
			return out, err
		}
		var rows []struct {
			ClubID uuid.UUID
			Count  int64
		}
		if err := db.Model(&clubModel.SiteModel{}).
			Select("site_club_id AS club_id, COUNT(*) AS count").
			Group("site_club_id").Scan(&rows).Error; err != nil {
			return out, err
		}
		sites := make(map[uuid.UUID]int64, len(rows))
		for _, r := range rows {
			sites[r.ClubID] = r.Count
		}
		for _, c := range clubs {
			out.Clubs = append(out.Clubs, AdminClub{ClubModel: c, SiteCount: sites[c.ClubID]})
		}
		err := db.Order("created_at DESC").Find(&out.Members).Error
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
