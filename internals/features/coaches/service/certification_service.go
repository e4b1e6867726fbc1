package service

import (
	"context"
	"fmt"
	"strings"

	clubModel "videoach_backend/internals/features/clubs/model"
	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/coaches/dto"
	"videoach_backend/internals/features/coaches/model"
	"videoach_backend/internals/features/pricing/plans"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificationService struct {
	DB     *gorm.DB
	Cache  cache.Store
	Limits clubService.LimitsResolver
}

func NewCertificationService(db *gorm.DB, store cache.Store, limits clubService.LimitsResolver) *CertificationService {
	return &CertificationService{DB: db, Cache: store, Limits: limits}
}

const groupsKey = "certification:groups"

func (s *CertificationService) revalidateGroups(ctx context.Context) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCoach})
}

// ===================== groups & modules (admin) =====================

func (s *CertificationService) ListGroups(ctx context.Context) ([]model.CertificationGroupModel, error) {
	return cache.Remember(ctx, s.Cache, groupsKey, []string{cache.GlobalTag(cache.TagCoach)}, func() ([]model.CertificationGroupModel, error) {
		out := []model.CertificationGroupModel{}
		err := s.DB.WithContext(ctx).
			Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("certification_module_name ASC") }).
			Preload("Modules.ActivityGroups").
			Order("certification_group_name ASC").
			Find(&out).Error
		return out, err
	})
}

func (s *CertificationService) GetGroup(ctx context.Context, id uuid.UUID) (*model.CertificationGroupModel, error) {
	var g model.CertificationGroupModel
	err := s.DB.WithContext(ctx).Preload("Modules.ActivityGroups").First(&g, "certification_group_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func moduleNames(names []string) []model.CertificationModuleModel {
	seen := map[string]bool{}
	out := make([]model.CertificationModuleModel, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[strings.ToLower(n)] {
			continue
		}
		seen[strings.ToLower(n)] = true
		out = append(out, model.CertificationModuleModel{CertificationModuleName: n})
	}
	return out
}

func (s *CertificationService) CreateGroup(ctx context.Context, in dto.CertificationGroupRequest) (*model.CertificationGroupModel, error) {
	g := model.CertificationGroupModel{
		CertificationGroupName: strings.TrimSpace(in.Name),
		Modules:                moduleNames(in.Modules),
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, err
	}
	s.revalidateGroups(ctx)
	return &g, nil
}

// RenameGroup only touches the name. Modules have their own endpoints.
func (s *CertificationService) RenameGroup(ctx context.Context, id uuid.UUID, name string) (*model.CertificationGroupModel, error) {
	res := s.DB.WithContext(ctx).Model(&model.CertificationGroupModel{}).
		Where("certification_group_id = ?", id).
		Update("certification_group_name", strings.TrimSpace(name))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	s.revalidateGroups(ctx)
	return s.GetGroup(ctx, id)
}

func (s *CertificationService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uuid.UUID
		if err := tx.Model(&model.CertificationModuleModel{}).
			Where("certification_module_group_id = ?", id).
			Pluck("certification_module_id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Exec("DELETE FROM certification_module_activity_groups WHERE certification_module_id IN ?", moduleIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM certification_certification_modules WHERE certification_module_id IN ?", moduleIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.CertificationModuleModel{}, "certification_module_id IN ?", moduleIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.CertificationModel{}).Where("certification_group_id = ?", id).
			Update("certification_group_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.CertificationGroupModel{}, "certification_group_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.revalidateGroups(ctx)
	return nil
}

func (s *CertificationService) activityGroups(tx *gorm.DB, ids []uuid.UUID) ([]clubModel.ActivityGroupModel, error) {
	out := []clubModel.ActivityGroupModel{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := tx.Where("activity_group_id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) != len(dedupe(ids)) {
		return nil, fmt.Errorf("%w: unknown activity group", helper.ErrInvalidInput)
	}
	return out, nil
}

func (s *CertificationService) CreateModule(ctx context.Context, groupID uuid.UUID, in dto.CertificationModuleRequest) (*model.CertificationModuleModel, error) {
	var m model.CertificationModuleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g model.CertificationGroupModel
		if err := tx.Select("certification_group_id").First(&g, "certification_group_id = ?", groupID).Error; err != nil {
			return err
		}
		groups, err := s.activityGroups(tx, in.ActivityGroupIDs)
		if err != nil {
			return err
		}
		m = model.CertificationModuleModel{
			CertificationModuleGroupID: groupID,
			CertificationModuleName:    strings.TrimSpace(in.Name),
			ActivityGroups:             groups,
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	s.revalidateGroups(ctx)
	return &m, nil
}

func (s *CertificationService) UpdateModule(ctx context.Context, id uuid.UUID, in dto.CertificationModuleRequest) (*model.CertificationModuleModel, error) {
	var m model.CertificationModuleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "certification_module_id = ?", id).Error; err != nil {
			return err
		}
		groups, err := s.activityGroups(tx, in.ActivityGroupIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&m).Update("certification_module_name", strings.TrimSpace(in.Name)).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Association("ActivityGroups").Replace(groups); err != nil {
			return err
		}
		m.ActivityGroups = groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.revalidateGroups(ctx)
	return &m, nil
}

func (s *CertificationService) DeleteModule(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM certification_module_activity_groups WHERE certification_module_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM certification_certification_modules WHERE certification_module_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.CertificationModuleModel{}, "certification_module_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.revalidateGroups(ctx)
	return nil
}

// ===================== coach certifications =====================

func (s *CertificationService) ListForCoach(ctx context.Context, coachID uuid.UUID) ([]model.CertificationModel, error) {
	out := []model.CertificationModel{}
	err := s.DB.WithContext(ctx).
		Preload("Modules").
		Preload("ActivityGroups").
		Where("certification_coach_id = ?", coachID).
		Order("certification_obtained_in DESC").
		Find(&out).Error
	return out, err
}

// resolve loads the modules and activity groups of a certification.
// Modules must belong to the certification group when one is set.
func (s *CertificationService) resolve(tx *gorm.DB, in dto.CertificationRequest) ([]model.CertificationModuleModel, []clubModel.ActivityGroupModel, error) {
	modules := []model.CertificationModuleModel{}
	if ids := dedupe(in.ModuleIDs); len(ids) > 0 {
		if err := tx.Where("certification_module_id IN ?", ids).Find(&modules).Error; err != nil {
			return nil, nil, err
		}
		if len(modules) != len(ids) {
			return nil, nil, fmt.Errorf("%w: unknown certification module", helper.ErrInvalidInput)
		}
		for _, m := range modules {
			if in.GroupID == nil || m.CertificationModuleGroupID != *in.GroupID {
				return nil, nil, fmt.Errorf("%w: module %s is not part of the certification group", helper.ErrInvalidInput, m.CertificationModuleName)
			}
		}
	}
	if in.GroupID != nil {
		var count int64
		if err := tx.Model(&model.CertificationGroupModel{}).
			Where("certification_group_id = ?", *in.GroupID).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count == 0 {
			return nil, nil, fmt.Errorf("%w: unknown certification group", helper.ErrInvalidInput)
		}
	}
	groups, err := s.activityGroups(tx, in.ActivityGroupIDs)
	if err != nil {
		return nil, nil, err
	}
	return modules, groups, nil
}

func (s *CertificationService) CreateCertification(ctx context.Context, actor helper.Actor, in dto.CertificationRequest) (*model.CertificationModel, error) {
	obtained, err := dbtime.ParseDate(in.ObtainedIn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	if !actor.IsAdmin() {
		limits, err := s.Limits.LimitsForUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		var count int64
		if err := s.DB.WithContext(ctx).Model(&model.CertificationModel{}).
			Where("certification_coach_id = ?", actor.UserID).Count(&count).Error; err != nil {
			return nil, err
		}
		if !plans.Allows(limits.MaxCertifications, count) {
			return nil, fmt.Errorf("%w: your plan allows %d certification(s)", helper.ErrLimitReached, limits.MaxCertifications)
		}
	}

	var c model.CertificationModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules, groups, err := s.resolve(tx, in)
		if err != nil {
			return err
		}
		c = model.CertificationModel{
			CertificationCoachID:    actor.UserID,
			CertificationName:       in.Name,
			CertificationObtainedIn: obtained,
			CertificationGroupID:    in.GroupID,
			CertificationDocument:   in.Document,
			Modules:                 modules,
			ActivityGroups:          groups,
		}
		return tx.Omit("Modules.*", "ActivityGroups.*").Create(&c).Error
	})
	if err != nil {
		return nil, err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCoach, UserID: actor.UserID.String()})
	return &c, nil
}

func (s *CertificationService) ensureCertification(ctx context.Context, id uuid.UUID, actor helper.Actor) (*model.CertificationModel, error) {
	var c model.CertificationModel
	if err := s.DB.WithContext(ctx).First(&c, "certification_id = ?", id).Error; err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && c.CertificationCoachID != actor.UserID {
		return nil, helper.ErrForbidden
	}
	return &c, nil
}

func (s *CertificationService) UpdateCertification(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.CertificationRequest) (*model.CertificationModel, error) {
	c, err := s.ensureCertification(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	obtained, err := dbtime.ParseDate(in.ObtainedIn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrInvalidInput, err)
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules, groups, err := s.resolve(tx, in)
		if err != nil {
			return err
		}
		if err := tx.Model(c).Updates(map[string]any{
			"certification_name":        in.Name,
			"certification_obtained_in": obtained,
			"certification_group_id":    in.GroupID,
			"certification_document":    in.Document,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(c).Association("Modules").Replace(modules); err != nil {
			return err
		}
		if err := tx.Model(c).Association("ActivityGroups").Replace(groups); err != nil {
			return err
		}
		c.Modules, c.ActivityGroups = modules, groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCoach, UserID: c.CertificationCoachID.String()})
	return c, nil
}

func (s *CertificationService) DeleteCertification(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	c, err := s.ensureCertification(ctx, id, actor)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(c).Association("Modules").Clear(); err != nil {
			return err
		}
		if err := tx.Model(c).Association("ActivityGroups").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.CertificationModel{}, "certification_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagCoach, UserID: c.CertificationCoachID.String()})
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
