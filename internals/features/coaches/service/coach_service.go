package service

import (
	"context"
	"errors"
	"fmt"

	"videoach_backend/internals/constants"
	clubModel "videoach_backend/internals/features/clubs/model"
	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/coaches/dto"
	"videoach_backend/internals/features/coaches/model"
	"videoach_backend/internals/features/pricing/plans"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CoachService struct {
	DB     *gorm.DB
	Cache  cache.Store
	Limits clubService.LimitsResolver
}

func NewCoachService(db *gorm.DB, store cache.Store, limits clubService.LimitsResolver) *CoachService {
	return &CoachService{DB: db, Cache: store, Limits: limits}
}

func (s *CoachService) revalidate(ctx context.Context, coachID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCoach, UserID: coachID.String()})
}

// GetProfile answers 404 while the coach has not filled a profile.
func (s *CoachService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.CoachProfileModel, error) {
	key := "coach:profile:" + userID.String()
	tags := []string{cache.UserTag(userID.String(), cache.TagCoach)}
	p, err := cache.Remember(ctx, s.Cache, key, tags, func() (model.CoachProfileModel, error) {
		var p model.CoachProfileModel
		err := s.DB.WithContext(ctx).First(&p, "coach_profile_user_id = ?", userID).Error
		return p, err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates the profile on first save and updates it afterwards.
func (s *CoachService) UpsertProfile(ctx context.Context, userID uuid.UUID, in dto.CoachProfileRequest) (*model.CoachProfileModel, error) {
	db := s.DB.WithContext(ctx)
	var cur model.CoachProfileModel
	err := db.Select("coach_profile_id").First(&cur, "coach_profile_user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p := in.ToModel(userID)
		if err := db.Create(&p).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := db.Model(&model.CoachProfileModel{}).
			Where("coach_profile_id = ?", cur.CoachProfileID).
			Updates(in.Columns()).Error; err != nil {
			return nil, err
		}
	}
	s.revalidate(ctx, userID)
	return s.GetProfile(ctx, userID)
}

func (s *CoachService) ListOffers(ctx context.Context, coachID uuid.UUID) ([]model.CoachOfferModel, error) {
	out := []model.CoachOfferModel{}
	err := s.DB.WithContext(ctx).Where("coach_offer_coach_id = ?", coachID).
		Order("coach_offer_name ASC").Find(&out).Error
	return out, err
}

func (s *CoachService) GetOffer(ctx context.Context, id uuid.UUID) (*model.CoachOfferModel, error) {
	var o model.CoachOfferModel
	if err := s.DB.WithContext(ctx).First(&o, "coach_offer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// offerLimit picks the plan limit that applies to an offer of target.
func offerLimit(l plans.Limits, target string) int {
	if target == model.TargetCompany {
		return l.MaxCompanyOffers
	}
	return l.MaxOffers
}

func (s *CoachService) checkOfferLimit(ctx context.Context, coachID uuid.UUID, target string) error {
	limits, err := s.Limits.LimitsForUserID(ctx, coachID)
	if err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.CoachOfferModel{}).
		Where("coach_offer_coach_id = ? AND coach_offer_target = ?", coachID, target).
		Count(&count).Error; err != nil {
		return err
	}
	max := offerLimit(limits, target)
	if !plans.Allows(max, count) {
		return fmt.Errorf("%w: your plan allows %d %s offer(s)", helper.ErrLimitReached, max, target)
	}
	return nil
}

func (s *CoachService) CreateOffer(ctx context.Context, actor helper.Actor, in dto.CoachOfferRequest) (*model.CoachOfferModel, error) {
	o, err := in.ToModel(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	if !actor.IsAdmin() {
		if err := s.checkOfferLimit(ctx, actor.UserID, o.CoachOfferTarget); err != nil {
			return nil, err
		}
	}
	if err := s.DB.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, actor.UserID)
	return &o, nil
}

func (s *CoachService) ensureOffer(ctx context.Context, id uuid.UUID, actor helper.Actor) (*model.CoachOfferModel, error) {
	o, err := s.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.CoachOfferCoachID != actor.UserID {
		return nil, helper.ErrForbidden
	}
	return o, nil
}

// UpdateOffer re-checks the limit when the offer moves to another target.
func (s *CoachService) UpdateOffer(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.CoachOfferRequest) (*model.CoachOfferModel, error) {
	cur, err := s.ensureOffer(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	next, err := in.ToModel(cur.CoachOfferCoachID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	if next.CoachOfferTarget != cur.CoachOfferTarget && !actor.IsAdmin() {
		if err := s.checkOfferLimit(ctx, cur.CoachOfferCoachID, next.CoachOfferTarget); err != nil {
			return nil, err
		}
	}
	next.CoachOfferID = cur.CoachOfferID
	next.CoachOfferCreatedAt = cur.CoachOfferCreatedAt
	if err := s.DB.WithContext(ctx).Save(&next).Error; err != nil {
		return nil, err
	}
	s.revalidate(ctx, cur.CoachOfferCoachID)
	return &next, nil
}

func (s *CoachService) DeleteOffer(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	o, err := s.ensureOffer(ctx, id, actor)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&model.CoachOfferModel{}, "coach_offer_id = ?", id).Error; err != nil {
		return err
	}
	s.revalidate(ctx, o.CoachOfferCoachID)
	return nil
}

// ClubCoach is a coach working for a club, with the public profile when there is one.
type ClubCoach struct {
	UserID   uuid.UUID                `json:"user_id"`
	UserName string                   `json:"user_name"`
	Email    string                   `json:"email"`
	Profile  *model.CoachProfileModel `json:"profile,omitempty"`
}

func (s *CoachService) ListClubCoaches(ctx context.Context, clubID uuid.UUID) ([]ClubCoach, error) {
	key := "coach:club:" + clubID.String()
	tags := []string{cache.GlobalTag(cache.TagCoach), cache.IDTag(clubID.String(), cache.TagClub)}
	return cache.Remember(ctx, s.Cache, key, tags, func() ([]ClubCoach, error) {
		var users []userModel.UserModel
		err := s.DB.WithContext(ctx).
			Joins("JOIN club_coaches cc ON cc.user_id = users.id").
			Where("cc.club_id = ?", clubID).
			Order("users.user_name ASC").
			Find(&users).Error
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		var profiles []model.CoachProfileModel
		if len(ids) > 0 {
			if err := s.DB.WithContext(ctx).Where("coach_profile_user_id IN ?", ids).Find(&profiles).Error; err != nil {
				return nil, err
			}
		}
		byUser := make(map[uuid.UUID]*model.CoachProfileModel, len(profiles))
		for i := range profiles {
			byUser[profiles[i].CoachProfileUserID] = &profiles[i]
		}
		out := make([]ClubCoach, 0, len(users))
		for _, u := range users {
			out = append(out, ClubCoach{UserID: u.ID, UserName: u.UserName, Email: u.Email, Profile: byUser[u.ID]})
		}
		return out, nil
	})
}

func isCoachRole(role string) bool {
	return role == constants.RoleCoach || role == constants.RoleManagerCoach
}

// LinkCoach adds a user with a coach role to the club. Linking twice is a no-op.
func (s *CoachService) LinkCoach(ctx context.Context, actor helper.Actor, clubID, userID uuid.UUID) error {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return err
	}
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).Select("id", "role").First(&u, "id = ?", userID).Error; err != nil {
		return err
	}
	if !isCoachRole(u.Role) {
		return fmt.Errorf("%w: user is not a coach", helper.ErrInvalidInput)
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&clubModel.ClubCoachModel{ClubID: clubID, UserID: userID}).Error
	if err != nil {
		return err
	}
	s.revalidateClub(ctx, clubID, userID)
	return nil
}

func (s *CoachService) UnlinkCoach(ctx context.Context, actor helper.Actor, clubID, userID uuid.UUID) error {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Delete(&clubModel.ClubCoachModel{}, "club_id = ? AND user_id = ?", clubID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.revalidateClub(ctx, clubID, userID)
	return nil
}

func (s *CoachService) revalidateClub(ctx context.Context, clubID, userID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache,
		cache.Revalidation{Tag: cache.TagCoach, UserID: userID.String()},
		cache.Revalidation{Tag: cache.TagClub, ID: clubID.String()},
		cache.Revalidation{Tag: cache.TagPlanning},
	)
}

// ClubsOfCoach lists the clubs a coach works for.
func (s *CoachService) ClubsOfCoach(ctx context.Context, coachID uuid.UUID) ([]clubModel.ClubModel, error) {
	out := []clubModel.ClubModel{}
	err := s.DB.WithContext(ctx).
		Joins("JOIN club_coaches cc ON cc.club_id = clubs.club_id").
		Where("cc.user_id = ?", coachID).
		Order("clubs.club_name ASC").
		Find(&out).Error
	return out, err
}
