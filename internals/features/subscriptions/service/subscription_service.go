package service

import (
	"context"
	"fmt"
	"log"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	clubService "videoach_backend/internals/features/clubs/service"
	notifModel "videoach_backend/internals/features/notifications/model"
	"videoach_backend/internals/features/pricing/plans"
	"videoach_backend/internals/features/subscriptions/dto"
	subModel "videoach_backend/internals/features/subscriptions/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LimitsResolver interface {
	LimitsForUserID(ctx context.Context, userID uuid.UUID) (plans.Limits, error)
}

// Notifier tells a club manager about new subscribers.
type Notifier interface {
	Notify(ctx context.Context, from *uuid.UUID, to []uuid.UUID, typ, message string) ([]notifModel.NotificationModel, error)
}

type SubscriptionService struct {
	DB     *gorm.DB
	Cache  cache.Store
	Limits LimitsResolver
	Notify Notifier
}

func NewSubscriptionService(db *gorm.DB, store cache.Store, limits LimitsResolver) *SubscriptionService {
	return &SubscriptionService{DB: db, Cache: store, Limits: limits}
}

// A subscription change moves what members may book.
func (s *SubscriptionService) revalidate(ctx context.Context, userIDs ...uuid.UUID) {
	revs := []cache.Revalidation{{Tag: cache.TagPlanning}}
	for _, id := range userIDs {
		revs = append(revs, cache.Revalidation{Tag: cache.TagUser, UserID: id.String()})
	}
	cache.Revalidate(ctx, s.Cache, revs...)
}

func withSelection(db *gorm.DB) *gorm.DB {
	return db.Preload("ActivityGroups").Preload("Activities").Preload("Sites").Preload("Rooms")
}

func (s *SubscriptionService) ListForClub(ctx context.Context, actor helper.Actor, clubID uuid.UUID) ([]subModel.SubscriptionModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	out := []subModel.SubscriptionModel{}
	err := withSelection(s.DB.WithContext(ctx)).
		Where("subscription_club_id = ? AND subscription_deleted = false", clubID).
		Order("subscription_name ASC").
		Find(&out).Error
	return out, err
}

func (s *SubscriptionService) GetByID(ctx context.Context, id uuid.UUID) (*subModel.SubscriptionModel, error) {
	var sub subModel.SubscriptionModel
	if err := withSelection(s.DB.WithContext(ctx)).First(&sub, "subscription_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionService) ensureManager(ctx context.Context, id uuid.UUID, actor helper.Actor) (*subModel.SubscriptionModel, error) {
	sub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.SubscriptionDeleted {
		return nil, helper.ErrNotFound
	}
	if _, err := clubService.EnsureClubManager(ctx, s.DB, sub.SubscriptionClubID, actor); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) Create(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.SubscriptionRequest) (*subModel.SubscriptionModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	m, err := in.ToModel(clubID)
	if err != nil {
		return nil, fmt.Errorf("%w: subscription_start_date", helper.ErrInvalidInput)
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Update rewrites the base fields. A change of mode or restriction keeps the selection sets;
// they are simply ignored by the eligibility filter until they apply again.
func (s *SubscriptionService) Update(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.SubscriptionRequest) (*subModel.SubscriptionModel, error) {
	sub, err := s.ensureManager(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	m, err := in.ToModel(sub.SubscriptionClubID)
	if err != nil {
		return nil, fmt.Errorf("%w: subscription_start_date", helper.ErrInvalidInput)
	}
	err = s.DB.WithContext(ctx).Model(&subModel.SubscriptionModel{}).
		Where("subscription_id = ?", id).
		Updates(map[string]any{
			"subscription_name":            m.SubscriptionName,
			"subscription_description":     m.SubscriptionDescription,
			"subscription_highlight":       m.SubscriptionHighlight,
			"subscription_start_date":      m.SubscriptionStartDate,
			"subscription_monthly":         m.SubscriptionMonthly,
			"subscription_yearly":          m.SubscriptionYearly,
			"subscription_cancelation_fee": m.SubscriptionCancelationFee,
			"subscription_inscription_fee": m.SubscriptionInscriptionFee,
			"subscription_mode":            m.SubscriptionMode,
			"subscription_restriction":     m.SubscriptionRestriction,
		}).Error
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return s.GetByID(ctx, id)
}

// Delete is soft: members keep their history but the subscription stops granting anything.
func (s *SubscriptionService) Delete(ctx context.Context, actor helper.Actor, id uuid.UUID) error {
	if _, err := s.ensureManager(ctx, id, actor); err != nil {
		return err
	}
	now := time.Now()
	err := s.DB.WithContext(ctx).Model(&subModel.SubscriptionModel{}).
		Where("subscription_id = ?", id).
		Updates(map[string]any{"subscription_deleted": true, "subscription_deletion_date": now}).Error
	if err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// UpdateSelection replaces the four selection sets. Every id must belong to the subscription's club
// (activity groups may also be defaults).
func (s *SubscriptionService) UpdateSelection(ctx context.Context, actor helper.Actor, id uuid.UUID, in dto.SelectionRequest) (*subModel.SubscriptionModel, error) {
	sub, err := s.ensureManager(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	clubID := sub.SubscriptionClubID

	var (
		groups     []clubModel.ActivityGroupModel
		activities []clubModel.ActivityModel
		sites      []clubModel.SiteModel
		rooms      []clubModel.RoomModel
	)
	db := s.DB.WithContext(ctx)
	if len(in.ActivityGroups) > 0 {
		if err := db.Where("activity_group_id IN ?", in.ActivityGroups).Find(&groups).Error; err != nil {
			return nil, err
		}
	}
	if len(in.Activities) > 0 {
		if err := db.Where("activity_id IN ? AND activity_club_id = ?", in.Activities, clubID).Find(&activities).Error; err != nil {
			return nil, err
		}
	}
	if len(in.Sites) > 0 {
		if err := db.Where("site_id IN ? AND site_club_id = ?", in.Sites, clubID).Find(&sites).Error; err != nil {
			return nil, err
		}
	}
	if len(in.Rooms) > 0 {
		if err := db.Where("room_id IN ? AND room_club_id = ?", in.Rooms, clubID).Find(&rooms).Error; err != nil {
			return nil, err
		}
	}
	if len(groups) != len(dedupe(in.ActivityGroups)) || len(activities) != len(dedupe(in.Activities)) ||
		len(sites) != len(dedupe(in.Sites)) || len(rooms) != len(dedupe(in.Rooms)) {
		return nil, fmt.Errorf("%w: selection outside of the club", helper.ErrInvalidInput)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		m := &subModel.SubscriptionModel{SubscriptionID: id}
		if err := tx.Model(m).Association("ActivityGroups").Replace(groups); err != nil {
			return err
		}
		if err := tx.Model(m).Association("Activities").Replace(activities); err != nil {
			return err
		}
		if err := tx.Model(m).Association("Sites").Replace(sites); err != nil {
			return err
		}
		return tx.Model(m).Association("Rooms").Replace(rooms)
	})
	if err != nil {
		return nil, err
	}
	s.revalidate(ctx)
	return s.GetByID(ctx, id)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// GetPossibleChoice lists what a manager can pick for a subscription of the given mode
// and restriction. Sites and rooms narrow each other: a SITE restriction keeps the rooms
// of the chosen sites, a ROOM restriction keeps the sites holding the chosen rooms.
// Activities and groups come from the remaining rooms, or the whole club under CLUB.
func (s *SubscriptionService) GetPossibleChoice(ctx context.Context, actor helper.Actor, clubID uuid.UUID, in dto.PossibleChoiceRequest) (dto.DataNames, error) {
	out := dto.EmptyDataNames()
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return out, err
	}
	db := s.DB.WithContext(ctx)

	var sites []clubModel.SiteModel
	if err := db.Where("site_club_id = ?", clubID).Order("site_name ASC").Find(&sites).Error; err != nil {
		return out, err
	}
	var rooms []clubModel.RoomModel
	if err := db.Preload("Activities.Group").Where("room_club_id = ?", clubID).Order("room_name ASC").Find(&rooms).Error; err != nil {
		return out, err
	}

	siteIDs := dedupe(in.SiteIDs)
	roomIDs := dedupe(in.RoomIDs)

	keptRooms := rooms[:0:0]
	for _, r := range rooms {
		switch in.Restriction {
		case subModel.RestrictionSite:
			if len(siteIDs) > 0 && !contains(siteIDs, r.RoomSiteID) {
				continue
			}
		case subModel.RestrictionRoom:
			if len(roomIDs) > 0 && !contains(roomIDs, r.RoomID) {
				continue
			}
		}
		keptRooms = append(keptRooms, r)
	}
	for _, st := range sites {
		switch in.Restriction {
		case subModel.RestrictionSite:
			if len(siteIDs) > 0 && !contains(siteIDs, st.SiteID) {
				continue
			}
		case subModel.RestrictionRoom:
			held := false
			for _, r := range keptRooms {
				if r.RoomSiteID == st.SiteID {
					held = true
					break
				}
			}
			if !held {
				continue
			}
		}
		out.Sites = append(out.Sites, dto.IDName{ID: st.SiteID, Name: st.SiteName})
	}
	for _, r := range keptRooms {
		out.Rooms = append(out.Rooms, dto.IDName{ID: r.RoomID, Name: r.RoomName})
	}

	var activities []clubModel.ActivityModel
	if in.Restriction == subModel.RestrictionClub {
		if err := db.Preload("Group").Where("activity_club_id = ?", clubID).Order("activity_name ASC").Find(&activities).Error; err != nil {
			return out, err
		}
	} else {
		seen := map[uuid.UUID]bool{}
		for _, r := range keptRooms {
			for _, a := range r.Activities {
				if !seen[a.ActivityID] {
					seen[a.ActivityID] = true
					activities = append(activities, a)
				}
			}
		}
	}

	switch in.Mode {
	case subModel.ModeActivity:
		for _, a := range activities {
			out.Activities = append(out.Activities, dto.IDName{ID: a.ActivityID, Name: a.ActivityName})
		}
	case subModel.ModeActivityGroup:
		seen := map[uuid.UUID]bool{}
		for _, a := range activities {
			if a.Group == nil || seen[a.ActivityGroupID] {
				continue
			}
			seen[a.ActivityGroupID] = true
			out.ActivityGroups = append(out.ActivityGroups, dto.IDName{ID: a.ActivityGroupID, Name: a.Group.ActivityGroupName})
		}
	}
	return out, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an id", helper.ErrInvalidInput, r)
		}
		out = append(out, id)
	}
	return dedupe(out), nil
}

func idTags(ids []uuid.UUID, tag string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, cache.IDTag(id.String(), tag))
	}
	return out
}

func cacheKey(prefix string, ids []uuid.UUID) string {
	k := prefix
	for _, id := range ids {
		k += ":" + id.String()
	}
	return k
}

// GetDataNames resolves ids to display names. Each list is cached with the id tags of its rows.
func (s *SubscriptionService) GetDataNames(ctx context.Context, in dto.DataNamesRequest) (dto.DataNames, error) {
	out := dto.EmptyDataNames()
	siteIDs, err := parseIDs(in.SiteIDs)
	if err != nil {
		return out, err
	}
	roomIDs, err := parseIDs(in.RoomIDs)
	if err != nil {
		return out, err
	}
	groupIDs, err := parseIDs(in.ActivityGroupIDs)
	if err != nil {
		return out, err
	}
	activityIDs, err := parseIDs(in.ActivityIDs)
	if err != nil {
		return out, err
	}

	names := func(prefix, tag string, ids []uuid.UUID, table, idCol, nameCol string) ([]dto.IDName, error) {
		if len(ids) == 0 {
			return []dto.IDName{}, nil
		}
		return cache.Remember(ctx, s.Cache, cacheKey("names:"+prefix, ids), idTags(ids, tag), func() ([]dto.IDName, error) {
			rows := []dto.IDName{}
			err := s.DB.WithContext(ctx).Table(table).
				Select(idCol+" AS id, "+nameCol+" AS name").
				Where(idCol+" IN ?", ids).
				Order(nameCol + " ASC").
				Scan(&rows).Error
			return rows, err
		})
	}

	if out.Sites, err = names("site", cache.TagSite, siteIDs, "sites", "site_id", "site_name"); err != nil {
		return out, err
	}
	if out.Rooms, err = names("room", cache.TagRoom, roomIDs, "rooms", "room_id", "room_name"); err != nil {
		return out, err
	}
	if out.ActivityGroups, err = names("group", cache.TagActivityGroup, groupIDs, "activity_groups", "activity_group_id", "activity_group_name"); err != nil {
		return out, err
	}
	if out.Activities, err = names("activity", cache.TagActivity, activityIDs, "activities", "activity_id", "activity_name"); err != nil {
		return out, err
	}
	return out, nil
}

// Subscribe adds the member to a live subscription. Joining a new club counts against the
// member's plan; more subscriptions in a club already joined are free.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	sub, err := s.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.SubscriptionDeleted {
		return helper.ErrNotFound
	}

	current, err := MemberSubscriptions(ctx, s.DB, userID, nil)
	if err != nil {
		return err
	}
	order, byClub := GroupByClub(current)
	for _, x := range current {
		if x.SubscriptionID == subscriptionID {
			return nil
		}
	}
	if _, already := byClub[sub.SubscriptionClubID]; !already {
		limits, err := s.Limits.LimitsForUserID(ctx, userID)
		if err != nil {
			return err
		}
		if !plans.Allows(limits.MaxNumberOfClubs, int64(len(order))) {
			return fmt.Errorf("%w: clubs per member", helper.ErrLimitReached)
		}
	}

	row := subModel.SubscriptionMemberModel{SubscriptionID: subscriptionID, UserID: userID}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	s.revalidate(ctx, userID)
	if res.RowsAffected > 0 {
		s.notifyManager(ctx, userID, sub)
	}
	return nil
}

func (s *SubscriptionService) notifyManager(ctx context.Context, userID uuid.UUID, sub *subModel.SubscriptionModel) {
	if s.Notify == nil {
		return
	}
	var club clubModel.ClubModel
	if err := s.DB.WithContext(ctx).Select("club_id", "club_manager_id").
		First(&club, "club_id = ?", sub.SubscriptionClubID).Error; err != nil {
		log.Printf("[SUBSCRIPTION] manager lookup failed: %v", err)
		return
	}
	msg := fmt.Sprintf("New subscriber to %s", sub.SubscriptionName)
	if _, err := s.Notify.Notify(ctx, &userID, []uuid.UUID{club.ClubManagerID}, notifModel.TypeNewSubscriber, msg); err != nil {
		log.Printf("[SUBSCRIPTION] notify manager failed: %v", err)
	}
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("subscription_id = ? AND user_id = ?", subscriptionID, userID).
		Delete(&subModel.SubscriptionMemberModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	s.revalidate(ctx, userID)
	return nil
}

// Mine lists the member's live subscriptions.
func (s *SubscriptionService) Mine(ctx context.Context, userID uuid.UUID) ([]subModel.SubscriptionModel, error) {
	subs, err := MemberSubscriptions(ctx, s.DB, userID, nil)
	if subs == nil {
		subs = []subModel.SubscriptionModel{}
	}
	return subs, err
}

// ListPublic is what a prospect sees on the club page.
func (s *SubscriptionService) ListPublic(ctx context.Context, clubID uuid.UUID) ([]subModel.SubscriptionModel, error) {
	out := []subModel.SubscriptionModel{}
	err := withSelection(s.DB.WithContext(ctx)).
		Where("subscription_club_id = ? AND subscription_deleted = false AND subscription_start_date <= ?", clubID, time.Now()).
		Order("subscription_monthly ASC").
		Find(&out).Error
	return out, err
}
