package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarService struct {
	DB    *gorm.DB
	Cache cache.Store
	Now   func() time.Time
}

func NewCalendarService(db *gorm.DB, store cache.Store) *CalendarService {
	return &CalendarService{DB: db, Cache: store, Now: time.Now}
}

// BuildCalendar turns a request into a calendar with one opening time per day.
// Days left out keep the default (open all day); a day given twice is refused.
func BuildCalendar(in dto.CalendarRequest) (model.OpeningCalendarModel, error) {
	start, err := dbtime.ParseDate(in.StartDate)
	if err != nil {
		return model.OpeningCalendarModel{}, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	times := model.DefaultOpeningTimes()
	seen := map[string]bool{}
	for _, ot := range in.OpeningTimes {
		if !constants.IsValidDay(ot.Day) || seen[ot.Day] {
			return model.OpeningCalendarModel{}, fmt.Errorf("%w: day %q", helper.ErrInvalidInput, ot.Day)
		}
		seen[ot.Day] = true
		m := model.OpeningTimeModel{
			OpeningTimeDay:      ot.Day,
			OpeningTimeWholeDay: ot.WholeDay,
			OpeningTimeClosed:   ot.Closed,
		}
		if !ot.WholeDay && !ot.Closed {
			for _, wh := range ot.WorkingHours {
				if !dbtime.ValidRange(wh.Opening, wh.Closing) {
					return model.OpeningCalendarModel{}, fmt.Errorf("%w: hours %s-%s on %s", helper.ErrInvalidInput, wh.Opening, wh.Closing, ot.Day)
				}
				m.WorkingHours = append(m.WorkingHours, model.WorkingHoursModel{
					WorkingHoursOpening: wh.Opening,
					WorkingHoursClosing: wh.Closing,
				})
			}
			if len(m.WorkingHours) == 0 {
				m.OpeningTimeClosed = true
			}
		}
		for i := range times {
			if times[i].OpeningTimeDay == ot.Day {
				times[i] = m
			}
		}
	}
	return model.OpeningCalendarModel{OpeningCalendarStartDate: start, OpeningTimes: times}, nil
}

// SelectCurrent picks the calendar with the latest start date on or before the end of now's day.
func SelectCurrent(cals []model.OpeningCalendarModel, now time.Time) *model.OpeningCalendarModel {
	limit := dbtime.EndOfDay(now)
	var best *model.OpeningCalendarModel
	for i := range cals {
		c := &cals[i]
		if c.OpeningCalendarStartDate.After(limit) {
			continue
		}
		if best == nil || c.OpeningCalendarStartDate.After(best.OpeningCalendarStartDate) {
			best = c
		}
	}
	return best
}

func sortOpeningTimes(c *model.OpeningCalendarModel) {
	rank := map[string]int{}
	for i, d := range constants.Days {
		rank[d] = i
	}
	sort.SliceStable(c.OpeningTimes, func(i, j int) bool {
		return rank[c.OpeningTimes[i].OpeningTimeDay] < rank[c.OpeningTimes[j].OpeningTimeDay]
	})
}

// owners of a calendar, by join table
const (
	ownerClub = "club"
	ownerSite = "site"
	ownerRoom = "room"
)

func (s *CalendarService) current(ctx context.Context, owner string, id uuid.UUID) (*model.OpeningCalendarModel, error) {
	now := s.Now()
	key := "calendar:" + owner + ":" + id.String() + ":" + now.Format("2006-01-02")
	tags := []string{cache.IDTag(id.String(), cache.TagCalendar)}
	cal, err := cache.Remember(ctx, s.Cache, key, tags, func() (*model.OpeningCalendarModel, error) {
		var c model.OpeningCalendarModel
		join := fmt.Sprintf("JOIN %s_calendars oc ON oc.opening_calendar_id = opening_calendars.opening_calendar_id", owner)
		err := s.DB.WithContext(ctx).
			Joins(join).
			Preload("OpeningTimes.WorkingHours").
			Where(fmt.Sprintf("oc.%s_id = ?", owner), id).
			Where("opening_calendars.opening_calendar_start_date <= ?", dbtime.EndOfDay(now)).
			Order("opening_calendars.opening_calendar_start_date DESC").
			First(&c).Error
		if helper.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		sortOpeningTimes(&c)
		return &c, nil
	})
	return cal, err
}

// GetCalendarForClub returns nil when the club has no calendar yet.
func (s *CalendarService) GetCalendarForClub(ctx context.Context, clubID uuid.UUID) (*model.OpeningCalendarModel, error) {
	return s.current(ctx, ownerClub, clubID)
}

// GetCalendarForSite follows the club when the site opens with it, or has no calendar of its own.
func (s *CalendarService) GetCalendarForSite(ctx context.Context, siteID uuid.UUID) (*model.OpeningCalendarModel, error) {
	var site model.SiteModel
	if err := s.DB.WithContext(ctx).First(&site, "site_id = ?", siteID).Error; err != nil {
		return nil, err
	}
	if !site.SiteOpenWithClub {
		cal, err := s.current(ctx, ownerSite, siteID)
		if err != nil || cal != nil {
			return cal, err
		}
	}
	return s.GetCalendarForClub(ctx, site.SiteClubID)
}

// GetCalendarForRoom: club first, then site, then the room's own calendar.
func (s *CalendarService) GetCalendarForRoom(ctx context.Context, roomID uuid.UUID) (*model.OpeningCalendarModel, error) {
	var room model.RoomModel
	if err := s.DB.WithContext(ctx).First(&room, "room_id = ?", roomID).Error; err != nil {
		return nil, err
	}
	switch {
	case room.RoomOpenWithClub:
		return s.GetCalendarForClub(ctx, room.RoomClubID)
	case room.RoomOpenWithSite:
		return s.GetCalendarForSite(ctx, room.RoomSiteID)
	}
	cal, err := s.current(ctx, ownerRoom, roomID)
	if err != nil || cal != nil {
		return cal, err
	}
	return s.GetCalendarForSite(ctx, room.RoomSiteID)
}

func (s *CalendarService) create(ctx context.Context, owner string, ownerID uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
	cal, err := BuildCalendar(in)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cal).Error; err != nil {
			return err
		}
		return tx.Exec(
			fmt.Sprintf("INSERT INTO %s_calendars (%s_id, opening_calendar_id) VALUES (?, ?)", owner, owner),
			ownerID, cal.OpeningCalendarID,
		).Error
	})
	if err != nil {
		return nil, err
	}
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagCalendar, ID: ownerID.String()},
		cache.Revalidation{Tag: cache.TagPlanning},
	)
	return &cal, nil
}

func (s *CalendarService) CreateForClub(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
	if _, err := EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	return s.create(ctx, ownerClub, clubID, in)
}

func (s *CalendarService) CreateForSite(ctx context.Context, actor helper.Actor, siteID uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
	if _, err := EnsureSiteManager(ctx, s.DB, siteID, actor); err != nil {
		return nil, err
	}
	cal, err := s.create(ctx, ownerSite, siteID, in)
	if err != nil {
		return nil, err
	}
	// a site with its own calendar stops following the club
	if err := s.DB.WithContext(ctx).Model(&model.SiteModel{}).Where("site_id = ?", siteID).
		Update("site_open_with_club", false).Error; err != nil {
		return nil, err
	}
	return cal, nil
}

func (s *CalendarService) CreateForRoom(ctx context.Context, actor helper.Actor, roomID uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
	if _, err := EnsureRoomManager(ctx, s.DB, roomID, actor); err != nil {
		return nil, err
	}
	cal, err := s.create(ctx, ownerRoom, roomID, in)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&model.RoomModel{}).Where("room_id = ?", roomID).
		Updates(map[string]any{"room_open_with_club": false, "room_open_with_site": false}).Error; err != nil {
		return nil, err
	}
	return cal, nil
}

// UpdateSiteOpenWith switches a site between its own calendar and the club's.
func (s *CalendarService) UpdateSiteOpenWith(ctx context.Context, actor helper.Actor, siteID uuid.UUID, in dto.OpenWithRequest) error {
	if _, err := EnsureSiteManager(ctx, s.DB, siteID, actor); err != nil {
		return err
	}
	if in.OpenWithClub == nil {
		return fmt.Errorf("%w: open_with_club is required", helper.ErrInvalidInput)
	}
	if err := s.DB.WithContext(ctx).Model(&model.SiteModel{}).Where("site_id = ?", siteID).
		Update("site_open_with_club", *in.OpenWithClub).Error; err != nil {
		return err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCalendar, ID: siteID.String()})
	return nil
}

func (s *CalendarService) UpdateRoomOpenWith(ctx context.Context, actor helper.Actor, roomID uuid.UUID, in dto.OpenWithRequest) error {
	if _, err := EnsureRoomManager(ctx, s.DB, roomID, actor); err != nil {
		return err
	}
	updates := map[string]any{}
	if in.OpenWithClub != nil {
		updates["room_open_with_club"] = *in.OpenWithClub
	}
	if in.OpenWithSite != nil {
		updates["room_open_with_site"] = *in.OpenWithSite
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: nothing to update", helper.ErrInvalidInput)
	}
	if err := s.DB.WithContext(ctx).Model(&model.RoomModel{}).Where("room_id = ?", roomID).Updates(updates).Error; err != nil {
		return err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCalendar, ID: roomID.String()})
	return nil
}
