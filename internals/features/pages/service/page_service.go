package service

import (
	"context"
	"fmt"

	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/pages/dto"
	"videoach_backend/internals/features/pages/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PageService struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewPageService(db *gorm.DB, store cache.Store) *PageService {
	return &PageService{DB: db, Cache: store}
}

func (s *PageService) revalidate(ctx context.Context, clubID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPage, ID: clubID.String()})
}

func withSections(db *gorm.DB) *gorm.DB {
	return db.Preload("Sections", func(q *gorm.DB) *gorm.DB {
		return q.Order("page_section_weight ASC")
	})
}

func (s *PageService) ListForClub(ctx context.Context, actor helper.Actor, clubID uuid.UUID) ([]model.PageModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	out := []model.PageModel{}
	err := s.DB.WithContext(ctx).Where("page_club_id = ?", clubID).Order("page_name ASC").Find(&out).Error
	return out, err
}

func (s *PageService) GetByID(ctx context.Context, id uuid.UUID) (*model.PageModel, error) {
	var p model.PageModel
	if err := withSections(s.DB.WithContext(ctx)).First(&p, "page_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PageService) ensurePage(ctx context.Context, id uuid.UUID, actor helper.Actor) (*model.PageModel, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := clubService.EnsureClubManager(ctx, s.DB, p.PageClubID, actor); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPublished is the public read of a club page. Unpublished pages are not found.
func (s *PageService) GetPublished(ctx context.Context, clubID uuid.UUID, target string) (*model.PageModel, error) {
	if !model.IsValidTarget(target) {
		return nil, fmt.Errorf("%w: unknown page target", helper.ErrInvalidInput)
	}
	key := fmt.Sprintf("page:published:%s:%s", clubID, target)
	tags := []string{cache.GlobalTag(cache.TagPage), cache.IDTag(clubID.String(), cache.TagPage)}
	p, err := cache.Remember(ctx, s.Cache, key, tags, func() (model.PageModel, error) {
		var p model.PageModel
		err := withSections(s.DB.WithContext(ctx)).
			Where("page_club_id = ? AND page_target = ? AND page_published = true", clubID, target).
			Order("page_updated_at DESC").
			First(&p).Error
		return p, err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create starts the page with the default sections of its target.
func (s *PageService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.PageRequest) (*model.PageModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	p := model.PageModel{
		PageClubID:    clubID,
		PageName:      in.Name,
		PageTarget:    in.Target,
		PagePublished: in.Published,
		Sections:      dto.DefaultSectionModels(in.Target),
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, clubID)
	return &p, nil
}

func (s *PageService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.PageRequest) (*model.PageModel, error) {
	p, err := s.ensurePage(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(&model.PageModel{}).Where("page_id = ?", id).Updates(map[string]any{
		"page_name":      in.Name,
		"page_target":    in.Target,
		"page_published": in.Published,
	}).Error
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, p.PageClubID)
	return s.GetByID(ctx, id)
}

// UpdateSections replaces every section of the page.
func (s *PageService) UpdateSections(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.UpdateSectionsRequest) (*model.PageModel, error) {
	p, err := s.ensurePage(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	sections, ok := in.ToModels()
	if !ok {
		return nil, fmt.Errorf("%w: unknown section model", helper.ErrInvalidInput)
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_section_page_id = ?", id).Delete(&model.PageSectionModel{}).Error; err != nil {
			return err
		}
		if len(sections) == 0 {
			return nil
		}
		for i := range sections {
			sections[i].PageSectionPageID = id
		}
		return tx.Create(&sections).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, p.PageClubID)
	return s.GetByID(ctx, id)
}

func (s *PageService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	p, err := s.ensurePage(ctx, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_section_page_id = ?", id).Delete(&model.PageSectionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PageModel{}, "page_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.revalidate(ctx, p.PageClubID)
	return nil
}
