package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/events/dto"
	"videoach_backend/internals/features/events/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"
	"videoach_backend/internals/helpers/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MaxImages per event
const MaxImages = 8

type EventService struct {
	DB      *gorm.DB
	Cache   cache.Store
	Storage storage.Uploader
	Now     func() time.Time
}

func NewEventService(db *gorm.DB, store cache.Store, up storage.Uploader) *EventService {
	return &EventService{DB: db, Cache: store, Storage: up, Now: time.Now}
}

func (s *EventService) revalidate(ctx context.Context, clubID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagEvent, ID: clubID.String()})
}

func (s *EventService) ListForClub(ctx context.Context, clubID uuid.UUID) ([]model.EventModel, error) {
	out := []model.EventModel{}
	err := s.DB.WithContext(ctx).
		Where("event_club_id = ?", clubID).
		Order("event_start_date DESC").
		Find(&out).Error
	return out, err
}

// Upcoming lists the events of the club starting today or later, soonest first.
func (s *EventService) Upcoming(ctx context.Context, clubID uuid.UUID) ([]model.EventModel, error) {
	today := dbtime.StartOfDay(s.Now())
	key := fmt.Sprintf("event:upcoming:%s:%s", clubID, today.Format("2006-01-02"))
	tags := []string{cache.GlobalTag(cache.TagEvent), cache.IDTag(clubID.String(), cache.TagEvent)}
	return cache.Remember(ctx, s.Cache, key, tags, func() ([]model.EventModel, error) {
		out := []model.EventModel{}
		err := s.DB.WithContext(ctx).
			Where("event_club_id = ? AND event_start_date >= ? AND event_cancelled = false", clubID, today).
			Order("event_start_date ASC").
			Find(&out).Error
		return out, err
	})
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var e model.EventModel
	if err := s.DB.WithContext(ctx).First(&e, "event_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EventService) ensureEvent(ctx context.Context, id uuid.UUID, actor helper.Actor) (*model.EventModel, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := clubService.EnsureClubManager(ctx, s.DB, e.EventClubID, actor); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.EventRequest) (*model.EventModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	if !in.Valid() {
		return nil, fmt.Errorf("%w: event ends before it starts", helper.ErrInvalidInput)
	}
	m := in.ToModel(clubID)
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, clubID)
	return &m, nil
}

func (s *EventService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.EventRequest) (*model.EventModel, error) {
	e, err := s.ensureEvent(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !in.Valid() {
		return nil, fmt.Errorf("%w: event ends before it starts", helper.ErrInvalidInput)
	}
	m := in.ToModel(e.EventClubID)
	err = s.DB.WithContext(ctx).Model(e).Updates(map[string]any{
		"event_name":           m.EventName,
		"event_brief":          m.EventBrief,
		"event_description":    m.EventDescription,
		"event_start_date":     m.EventStartDate,
		"event_end_date":       m.EventEndDate,
		"event_start_display":  m.EventStartDisplay,
		"event_end_display":    m.EventEndDisplay,
		"event_banner_text":    m.EventBannerText,
		"event_cancelled":      m.EventCancelled,
		"event_price":          m.EventPrice,
		"event_free":           m.EventFree,
		"event_address":        m.EventAddress,
		"event_search_address": m.EventSearchAddress,
		"event_longitude":      m.EventLongitude,
		"event_latitude":       m.EventLatitude,
	}).Error
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, e.EventClubID)
	return s.GetByID(ctx, id)
}

// Delete is soft; images stay in storage until the event is purged.
func (s *EventService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	e, err := s.ensureEvent(ctx, id, actor)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&model.EventModel{}, "event_id = ?", id).Error; err != nil {
		return err
	}
	s.revalidate(ctx, e.EventClubID)
	return nil
}

func (s *EventService) AddImage(ctx context.Context, actor helper.Actor, id uuid.UUID, fh *multipart.FileHeader) (*model.EventModel, error) {
	e, err := s.ensureEvent(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if len(e.EventImageURLs) >= MaxImages {
		return nil, fmt.Errorf("%w: at most %d images", helper.ErrLimitReached, MaxImages)
	}
	url, err := storage.UploadImage(ctx, s.Storage, "events", id.String(), fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", helper.ErrInvalidInput, err)
	}
	urls := append(pq.StringArray{}, e.EventImageURLs...)
	urls = append(urls, url)
	if err := s.DB.WithContext(ctx).Model(e).Update("event_image_urls", urls).Error; err != nil {
		return nil, err
	}
	e.EventImageURLs = urls
	s.revalidate(ctx, e.EventClubID)
	return e, nil
}

func (s *EventService) RemoveImage(ctx context.Context, actor helper.Actor, id uuid.UUID, url string) (*model.EventModel, error) {
	e, err := s.ensureEvent(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	kept := pq.StringArray{}
	found := false
	for _, u := range e.EventImageURLs {
		if u == url {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return nil, helper.ErrNotFound
	}
	if err := s.DB.WithContext(ctx).Model(e).Update("event_image_urls", kept).Error; err != nil {
		return nil, err
	}
	if err := storage.DeleteByURL(ctx, s.Storage, url); err != nil {
		log.Printf("[EVENT] delete image %s: %v", url, err)
	}
	e.EventImageURLs = kept
	s.revalidate(ctx, e.EventClubID)
	return e, nil
}
