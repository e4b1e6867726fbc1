package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videoach_backend/internals/constants"
	pricingModel "videoach_backend/internals/features/pricing/model"
	planningModel "videoach_backend/internals/features/plannings/model"
	subService "videoach_backend/internals/features/subscriptions/service"
	"videoach_backend/internals/features/users/user/dto"
	"videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewUserService(db *gorm.DB, store cache.Store) *UserService {
	return &UserService{DB: db, Cache: store}
}

func userTags(id uuid.UUID) []string {
	return []string{cache.IDTag(id.String(), cache.TagUser), cache.UserTag(id.String(), cache.TagUser)}
}

// GetUser returns the signed-in view of a user. An unknown id yields a VISITOR.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (dto.UserDetail, error) {
	return cache.Remember(ctx, s.Cache, "user:detail:"+id.String(), userTags(id), func() (dto.UserDetail, error) {
		var u model.UserModel
		err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error
		if helper.IsNotFound(err) {
			return dto.Visitor(), nil
		}
		if err != nil {
			return dto.UserDetail{}, err
		}

		out := dto.UserDetail{
			ID:        u.ID,
			Name:      u.UserName,
			Email:     u.Email,
			Role:      u.Role,
			PricingID: u.PricingID,
			Features:  []string{},
		}
		if u.PricingID != nil {
			var features []pricingModel.PricingFeatureModel
			if err := s.DB.WithContext(ctx).
				Where("pricing_feature_pricing_id = ?", *u.PricingID).
				Find(&features).Error; err != nil {
				return dto.UserDetail{}, err
			}
			for _, f := range features {
				out.Features = append(out.Features, f.PricingFeatureFeature)
			}
		}
		subs, err := subService.MemberSubscriptions(ctx, s.DB, u.ID, nil)
		if err != nil {
			return dto.UserDetail{}, err
		}
		out.Subscriptions = subs
		return out, nil
	})
}

// GetReservationsByUserID lists reservations dated at or after after, oldest first.
func (s *UserService) GetReservationsByUserID(ctx context.Context, userID uuid.UUID, after time.Time) ([]planningModel.ReservationModel, error) {
	var out []planningModel.ReservationModel
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Preload("Activity").
		Preload("PlanningActivity.Activity").
		Preload("PlanningActivity.Coach").
		Preload("PlanningActivity.Room").
		Where("reservation_user_id = ? AND reservation_date >= ?", userID, after).
		Order("reservation_date ASC").
		Find(&out).Error
	return out, err
}

/* =======================================================
   ADMIN
   ======================================================= */

func (s *UserService) List(ctx context.Context, q string, p helper.Paging) ([]model.UserModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		base = base.Where("user_name ILIKE ? OR email ILIKE ?", like, like)
	}
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []model.UserModel
	err := base.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&users).Error
	return users, total, err
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.UserModel, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", helper.ErrInvalidInput)
	}
	if pid, ok := updates["pricing_id"].(uuid.UUID); ok {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&pricingModel.PricingModel{}).Where("pricing_id = ?", pid).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: unknown pricing", helper.ErrInvalidInput)
		}
	}
	res := s.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	s.revalidate(ctx, id)
	return s.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.revalidate(ctx, id)
	return nil
}

func (s *UserService) revalidate(ctx context.Context, id uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagUser, UserID: id.String(), ID: id.String()})
}

/* =======================================================
   AUTH PROVIDER
   ======================================================= */

// CreateNewUserFromAuthProvider keeps the first email and names the user "first last".
// An existing account with that email is linked instead of duplicated.
func (s *UserService) CreateNewUserFromAuthProvider(ctx context.Context, authProviderID string, emails []string, firstName, lastName string) (*model.UserModel, error) {
	authProviderID = strings.TrimSpace(authProviderID)
	if authProviderID == "" || len(emails) == 0 || strings.TrimSpace(emails[0]) == "" {
		return nil, fmt.Errorf("%w: auth provider id and email are required", helper.ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(emails[0]))
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	var u model.UserModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("auth_provider_id = ?", authProviderID).First(&u).Error
		if err == nil {
			return nil
		}
		if !helper.IsNotFound(err) {
			return err
		}
		err = tx.Where("LOWER(email) = ?", email).First(&u).Error
		switch {
		case err == nil:
			return tx.Model(&u).Updates(map[string]any{"auth_provider_id": authProviderID, "is_active": true}).Error
		case helper.IsNotFound(err):
			u = model.UserModel{
				UserName:       name,
				Email:          email,
				AuthProviderID: &authProviderID,
				Role:           constants.RoleMember,
				IsActive:       true,
			}
			return tx.Create(&u).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx, u.ID)
	return &u, nil
}

// DeactivateByAuthProvider disables the account; reservations and subscriptions stay.
func (s *UserService) DeactivateByAuthProvider(ctx context.Context, authProviderID string) error {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).Where("auth_provider_id = ?", authProviderID).First(&u).Error; err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Model(&u).Update("is_active", false).Error; err != nil {
		return err
	}
	s.revalidate(ctx, u.ID)
	return nil
}
