package service

import (
	"context"
	"fmt"
	"time"

	"videoach_backend/internals/constants"
	pricingModel "videoach_backend/internals/features/pricing/model"
	"videoach_backend/internals/features/pricing/plans"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PricingService struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewPricingService(db *gorm.DB, store cache.Store) *PricingService {
	return &PricingService{DB: db, Cache: store}
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("pricing_option_weight ASC")
}

// GetPricingForRole lists the live pricings sold to role, cheapest first.
func (s *PricingService) GetPricingForRole(ctx context.Context, role string) ([]pricingModel.PricingModel, error) {
	if !constants.IsValidRole(role) {
		return nil, helper.ErrInvalidInput
	}
	key := "pricing:role:" + role
	return cache.Remember(ctx, s.Cache, key, []string{cache.GlobalTag(cache.TagPricing)}, func() ([]pricingModel.PricingModel, error) {
		var out []pricingModel.PricingModel
		err := s.DB.WithContext(ctx).
			Preload("Options", orderedOptions).
			Where("pricing_role_target = ? AND pricing_deleted = false", role).
			Order("pricing_monthly ASC").
			Find(&out).Error
		return out, err
	})
}

// GetAllPricing includes deleted pricings: it backs the admin list.
func (s *PricingService) GetAllPricing(ctx context.Context) ([]pricingModel.PricingModel, error) {
	return cache.Remember(ctx, s.Cache, "pricing:all", []string{cache.GlobalTag(cache.TagPricing)}, func() ([]pricingModel.PricingModel, error) {
		var out []pricingModel.PricingModel
		err := s.DB.WithContext(ctx).
			Order("pricing_role_target ASC").
			Order("pricing_monthly ASC").
			Find(&out).Error
		return out, err
	})
}

func (s *PricingService) GetPricingByID(ctx context.Context, id uuid.UUID) (*pricingModel.PricingModel, error) {
	tags := []string{cache.IDTag(id.String(), cache.TagPricing), cache.GlobalTag(cache.TagPricing)}
	p, err := cache.Remember(ctx, s.Cache, "pricing:id:"+id.String(), tags, func() (pricingModel.PricingModel, error) {
		var out pricingModel.PricingModel
		err := s.DB.WithContext(ctx).
			Preload("Options", orderedOptions).
			Preload("Features").
			First(&out, "pricing_id = ?", id).Error
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LimitsForUser resolves the plan limits of a user from their pricing.
func (s *PricingService) LimitsForUser(ctx context.Context, role string, pricingID *uuid.UUID) (plans.Limits, error) {
	if pricingID == nil {
		return plans.LimitsFor(role, nil), nil
	}
	p, err := s.GetPricingByID(ctx, *pricingID)
	if helper.IsNotFound(err) {
		return plans.LimitsFor(role, nil), nil
	}
	if err != nil {
		return plans.Limits{}, err
	}
	return plans.LimitsFor(role, p), nil
}

func validateFeatures(role string, features []pricingModel.PricingFeatureModel) error {
	for _, f := range features {
		allowed := false
		for _, r := range constants.FeatureRoles[f.PricingFeatureFeature] {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: feature %s cannot be sold to %s", helper.ErrInvalidInput, f.PricingFeatureFeature, role)
		}
	}
	return nil
}

func (s *PricingService) Create(ctx context.Context, in pricingModel.PricingModel) (*pricingModel.PricingModel, error) {
	if err := validateFeatures(in.PricingRoleTarget, in.Features); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&in).Error; err != nil {
		return nil, fmt.Errorf("create pricing: %w", err)
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPricing, ID: in.PricingID.String()})
	return &in, nil
}

// Update replaces the base fields, options and features in one transaction.
func (s *PricingService) Update(ctx context.Context, id uuid.UUID, in pricingModel.PricingModel) (*pricingModel.PricingModel, error) {
	if err := validateFeatures(in.PricingRoleTarget, in.Features); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current pricingModel.PricingModel
		if err := tx.First(&current, "pricing_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("pricing_option_pricing_id = ?", id).Delete(&pricingModel.PricingOptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pricing_feature_pricing_id = ?", id).Delete(&pricingModel.PricingFeatureModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&current).Select(
			"pricing_role_target", "pricing_title", "pricing_description", "pricing_free",
			"pricing_highlighted", "pricing_monthly", "pricing_yearly",
		).Updates(map[string]any{
			"pricing_role_target": in.PricingRoleTarget,
			"pricing_title":       in.PricingTitle,
			"pricing_description": in.PricingDescription,
			"pricing_free":        in.PricingFree,
			"pricing_highlighted": in.PricingHighlighted,
			"pricing_monthly":     in.PricingMonthly,
			"pricing_yearly":      in.PricingYearly,
		}).Error; err != nil {
			return err
		}
		for i := range in.Options {
			in.Options[i].PricingOptionPricingID = id
		}
		for i := range in.Features {
			in.Features[i].PricingFeaturePricingID = id
		}
		if len(in.Options) > 0 {
			if err := tx.Create(&in.Options).Error; err != nil {
				return err
			}
		}
		if len(in.Features) > 0 {
			if err := tx.Create(&in.Features).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPricing, ID: id.String()})
	return s.GetPricingByID(ctx, id)
}

func (s *PricingService) setDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	var when *time.Time
	if deleted {
		now := time.Now()
		when = &now
	}
	res := s.DB.WithContext(ctx).Model(&pricingModel.PricingModel{}).
		Where("pricing_id = ?", id).
		Updates(map[string]any{"pricing_deleted": deleted, "pricing_deletion_date": when})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPricing, ID: id.String()})
	return nil
}

// Delete is soft: users keep their pricing, it is no longer sold.
func (s *PricingService) Delete(ctx context.Context, id uuid.UUID) error { return s.setDeleted(ctx, id, true) }

func (s *PricingService) Undelete(ctx context.Context, id uuid.UUID) error {
	return s.setDeleted(ctx, id, false)
}

// DeleteOption removes the options named name from one pricing.
func (s *PricingService) DeleteOption(ctx context.Context, pricingID uuid.UUID, name string) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("pricing_option_pricing_id = ? AND pricing_option_name = ?", pricingID, name).
		Delete(&pricingModel.PricingOptionModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagPricing, ID: pricingID.String()})
	return res.RowsAffected, nil
}

// LimitsForUserID loads the user's role and pricing first. Unknown users get the visitor limits.
func (s *PricingService) LimitsForUserID(ctx context.Context, userID uuid.UUID) (plans.Limits, error) {
	var u userModel.UserModel
	err := s.DB.WithContext(ctx).Select("id", "role", "pricing_id").First(&u, "id = ?", userID).Error
	if helper.IsNotFound(err) {
		return plans.LimitsFor(constants.RoleVisitor, nil), nil
	}
	if err != nil {
		return plans.Limits{}, err
	}
	return s.LimitsForUser(ctx, u.Role, u.PricingID)
}
