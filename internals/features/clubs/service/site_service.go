package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	pageModel "videoach_backend/internals/features/pages/model"
	"videoach_backend/internals/features/pricing/plans"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/geo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteService struct {
	DB     *gorm.DB
	Cache  cache.Store
	Limits LimitsResolver
}

func NewSiteService(db *gorm.DB, store cache.Store, limits LimitsResolver) *SiteService {
	return &SiteService{DB: db, Cache: store, Limits: limits}
}

func (s *SiteService) revalidate(ctx context.Context, clubID uuid.UUID, siteID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagSite, ID: siteID.String()},
		cache.Revalidation{Tag: cache.TagClub, ID: clubID.String()},
	)
}

// ListForClub returns the sites of a club by name, no more than the manager's plan allows.
func (s *SiteService) ListForClub(ctx context.Context, actor helper.Actor, clubID uuid.UUID) ([]model.SiteModel, error) {
	club, err := EnsureClubManager(ctx, s.DB, clubID, actor)
	if err != nil {
		return nil, err
	}
	limits, err := s.Limits.LimitsForUserID(ctx, club.ClubManagerID)
	if err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("room_name ASC") }).
		Where("site_club_id = ?", clubID).
		Order("site_name ASC")
	if limits.MaxSites != plans.Unlimited {
		q = q.Limit(limits.MaxSites)
	}
	var out []model.SiteModel
	return out, q.Find(&out).Error
}

func (s *SiteService) GetByID(ctx context.Context, id uuid.UUID) (*model.SiteModel, error) {
	var site model.SiteModel
	err := s.DB.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("room_name ASC") }).
		First(&site, "site_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SiteService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.SiteRequest) (*model.SiteModel, error) {
	club, err := EnsureClubManager(ctx, s.DB, clubID, actor)
	if err != nil {
		return nil, err
	}
	limits, err := s.Limits.LimitsForUserID(ctx, club.ClubManagerID)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.SiteModel{}).Where("site_club_id = ?", clubID).Count(&count).Error; err != nil {
		return nil, err
	}
	if !plans.Allows(limits.MaxSites, count) {
		return nil, fmt.Errorf("%w: your plan allows %d site(s) per club", helper.ErrLimitReached, limits.MaxSites)
	}

	site := model.SiteModel{
		SiteClubID:        clubID,
		SiteName:          in.Name,
		SiteAddress:       in.Address,
		SiteSearchAddress: in.SearchAddress,
		SiteLongitude:     in.Longitude,
		SiteLatitude:      in.Latitude,
		SiteOpenWithClub:  in.OpenWithClub == nil || *in.OpenWithClub,
	}
	if err := s.DB.WithContext(ctx).Create(&site).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, clubID, site.SiteID)
	return &site, nil
}

func (s *SiteService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.SiteRequest) (*model.SiteModel, error) {
	site, err := EnsureSiteManager(ctx, s.DB, id, actor)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"site_name":           in.Name,
		"site_address":        in.Address,
		"site_search_address": in.SearchAddress,
		"site_longitude":      in.Longitude,
		"site_latitude":       in.Latitude,
	}
	if in.OpenWithClub != nil {
		updates["site_open_with_club"] = *in.OpenWithClub
	}
	if err := s.DB.WithContext(ctx).Model(site).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, site.SiteClubID, id)
	return s.GetByID(ctx, id)
}

func (s *SiteService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	site, err := EnsureSiteManager(ctx, s.DB, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_site_id = ?", id).Delete(&model.RoomModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(site).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx, site.SiteClubID, id)
	return nil
}

/* =======================================================
   SEARCH
   ======================================================= */

// SearchClub is the club of a search hit with what the public site card shows.
type SearchClub struct {
	model.ClubModel
	Pages []pageModel.PageModel `json:"pages"`
}

type SiteSearchResult struct {
	model.SiteModel
	Club     *SearchClub `json:"club"`
	Distance float64     `json:"distance"`
}

// NormalizeSearch checks the location and range; a range above the maximum is refused.
func NormalizeSearch(q dto.SiteSearchQuery) (dto.SiteSearchQuery, error) {
	if q.Range > geo.MaxRangeKm {
		return q, fmt.Errorf("%w: range is limited to %d km", helper.ErrInvalidInput, geo.MaxRangeKm)
	}
	q.Range = geo.ClampRange(q.Range)
	if q.Lng < -180 || q.Lng > 180 || q.Lat < -90 || q.Lat > 90 {
		return q, helper.ErrInvalidInput
	}
	return q, nil
}

// Search prefilters sites on the bounding box in SQL, then keeps those within range.
// Results are sorted by distance.
func (s *SiteService) Search(ctx context.Context, q dto.SiteSearchQuery) ([]SiteSearchResult, error) {
	q, err := NormalizeSearch(q)
	if err != nil {
		return nil, err
	}
	key := "site:search:" + strconv.FormatFloat(q.Lng, 'f', 5, 64) + ":" +
		strconv.FormatFloat(q.Lat, 'f', 5, 64) + ":" + strconv.FormatFloat(q.Range, 'f', 1, 64)
	return cache.Remember(ctx, s.Cache, key, []string{cache.GlobalTag(cache.TagSite)}, func() ([]SiteSearchResult, error) {
		return s.search(ctx, q)
	})
}

func (s *SiteService) search(ctx context.Context, q dto.SiteSearchQuery) ([]SiteSearchResult, error) {
	box := geo.BoundingBox(q.Lng, q.Lat, q.Range)
	var sites []model.SiteModel
	err := s.DB.WithContext(ctx).
		Preload("Club").
		Preload("Club.Activities").
		Preload("Club.Activities.Group").
		Where("site_longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Where("site_latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Find(&sites).Error
	if err != nil {
		return nil, err
	}

	out := make([]SiteSearchResult, 0, len(sites))
	clubIDs := make([]uuid.UUID, 0, len(sites))
	for _, site := range sites {
		d := geo.DistanceKm(q.Lng, q.Lat, site.SiteLongitude, site.SiteLatitude)
		if d > q.Range {
			continue
		}
		r := SiteSearchResult{SiteModel: site, Distance: d}
		if site.Club != nil {
			r.Club = &SearchClub{ClubModel: *site.Club}
			r.SiteModel.Club = nil
			clubIDs = append(clubIDs, site.Club.ClubID)
		}
		out = append(out, r)
	}
	if len(clubIDs) > 0 {
		var pages []pageModel.PageModel
		if err := s.DB.WithContext(ctx).Where("page_club_id IN ?", clubIDs).Find(&pages).Error; err != nil {
			return nil, err
		}
		byClub := map[uuid.UUID][]pageModel.PageModel{}
		for _, p := range pages {
			byClub[p.PageClubID] = append(byClub[p.PageClubID], p)
		}
		for i := range out {
			if out[i].Club != nil {
				out[i].Club.Pages = byClub[out[i].Club.ClubID]
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}
