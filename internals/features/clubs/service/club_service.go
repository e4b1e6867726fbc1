package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/pricing/plans"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LimitsResolver gives the plan limits of a user.
type LimitsResolver interface {
	LimitsForUserID(ctx context.Context, userID uuid.UUID) (plans.Limits, error)
}

type ClubService struct {
	DB      *gorm.DB
	Cache   cache.Store
	Storage storage.Uploader
	Limits  LimitsResolver
}

func NewClubService(db *gorm.DB, store cache.Store, up storage.Uploader, limits LimitsResolver) *ClubService {
	return &ClubService{DB: db, Cache: store, Storage: up, Limits: limits}
}

func (s *ClubService) revalidate(ctx context.Context, managerID, clubID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagClub, UserID: managerID.String(), ID: clubID.String()},
		cache.Revalidation{Tag: cache.TagSite},
	)
}

// ListForManager returns the clubs of a manager with their sites, by name.
func (s *ClubService) ListForManager(ctx context.Context, managerID uuid.UUID) ([]model.ClubModel, error) {
	tags := []string{cache.UserTag(managerID.String(), cache.TagClub)}
	return cache.Remember(ctx, s.Cache, "club:manager:"+managerID.String(), tags, func() ([]model.ClubModel, error) {
		var out []model.ClubModel
		err := s.DB.WithContext(ctx).
			Preload("Sites", func(db *gorm.DB) *gorm.DB { return db.Order("site_name ASC") }).
			Where("club_manager_id = ?", managerID).
			Order("club_name ASC").
			Find(&out).Error
		return out, err
	})
}

func (s *ClubService) GetByID(ctx context.Context, id uuid.UUID) (*model.ClubModel, error) {
	tags := []string{cache.IDTag(id.String(), cache.TagClub)}
	club, err := cache.Remember(ctx, s.Cache, "club:id:"+id.String(), tags, func() (model.ClubModel, error) {
		var c model.ClubModel
		err := s.DB.WithContext(ctx).
			Preload("Sites", func(db *gorm.DB) *gorm.DB { return db.Order("site_name ASC") }).
			Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("activity_name ASC") }).
			Preload("Activities.Group").
			First(&c, "club_id = ?", id).Error
		return c, err
	})
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) GetBySlug(ctx context.Context, slug string) (*model.ClubModel, error) {
	var c model.ClubModel
	if err := s.DB.WithContext(ctx).Select("club_id").First(&c, "club_slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, c.ClubID)
}

// Create checks the manager's club limit first. With IsSite a site mirrors the club.
func (s *ClubService) Create(ctx context.Context, actor helper.Actor, in dto.CreateClubRequest) (*model.ClubModel, error) {
	limits, err := s.Limits.LimitsForUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.ClubModel{}).
		Where("club_manager_id = ?", actor.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if !plans.Allows(limits.MaxClubs, count) {
		return nil, fmt.Errorf("%w: your plan allows %d club(s)", helper.ErrLimitReached, limits.MaxClubs)
	}

	slug, err := helper.EnsureUniqueSlug(ctx, s.DB, "clubs", "club_slug", helper.Slugify(in.Name, helper.DefaultSlugMaxLen))
	if err != nil {
		return nil, err
	}
	club := model.ClubModel{
		ClubManagerID: actor.UserID,
		ClubName:      in.Name,
		ClubSlug:      slug,
		ClubAddress:   in.Address,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&club).Error; err != nil {
			return err
		}
		if !in.IsSite {
			return nil
		}
		site := model.SiteModel{
			SiteClubID:        club.ClubID,
			SiteName:          in.Name,
			SiteAddress:       in.Address,
			SiteSearchAddress: in.SearchAddress,
			SiteLongitude:     in.Longitude,
			SiteLatitude:      in.Latitude,
			SiteOpenWithClub:  true,
		}
		if err := tx.Create(&site).Error; err != nil {
			return err
		}
		club.Sites = []model.SiteModel{site}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, actor.UserID, club.ClubID)
	log.Printf("[CLUB] %s created by %s", club.ClubID, actor.UserID)
	return &club, nil
}

func (s *ClubService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.UpdateClubRequest) (*model.ClubModel, error) {
	club, err := EnsureClubManager(ctx, s.DB, id, actor)
	if err != nil {
		return nil, err
	}
	updates := in.Updates()
	if in.DeleteLogo && club.ClubLogoURL != nil {
		if err := storage.DeleteByURL(ctx, s.Storage, *club.ClubLogoURL); err != nil {
			log.Printf("[CLUB] delete logo %s: %v", *club.ClubLogoURL, err)
		}
		updates["club_logo_url"] = nil
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(club).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	s.revalidate(ctx, club.ClubManagerID, id)
	return s.GetByID(ctx, id)
}

// UploadLogo stores the image as webp and replaces the previous logo.
func (s *ClubService) UploadLogo(ctx context.Context, actor helper.Actor, id uuid.UUID, fh *multipart.FileHeader) (string, error) {
	club, err := EnsureClubManager(ctx, s.DB, id, actor)
	if err != nil {
		return "", err
	}
	url, err := storage.UploadImage(ctx, s.Storage, "clubs", id.String(), fh)
	if err != nil {
		return "", fmt.Errorf("%w: %w", helper.ErrInvalidInput, err)
	}
	if err := s.DB.WithContext(ctx).Model(club).Update("club_logo_url", url).Error; err != nil {
		return "", err
	}
	if club.ClubLogoURL != nil {
		if err := storage.DeleteByURL(ctx, s.Storage, *club.ClubLogoURL); err != nil {
			log.Printf("[CLUB] delete old logo: %v", err)
		}
	}
	s.revalidate(ctx, club.ClubManagerID, id)
	return url, nil
}

// Delete is soft on the club, its sites and rooms.
func (s *ClubService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	club, err := EnsureClubManager(ctx, s.DB, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_club_id = ?", id).Delete(&model.RoomModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_club_id = ?", id).Delete(&model.SiteModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(club).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx, club.ClubManagerID, id)
	return nil
}
