package service

import (
	"context"
	"fmt"
	"log"
	"time"

	clubService "videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/features/notifications/model"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	DB        *gorm.DB
	Publisher Publisher
	Mailer    Mailer
	Now       func() time.Time
}

func NewNotificationService(db *gorm.DB, pub Publisher, mailer Mailer) *NotificationService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &NotificationService{DB: db, Publisher: pub, Mailer: mailer, Now: time.Now}
}

var subjects = map[string]string{
	model.TypeSearchCoach:    "A club is looking for a coach",
	model.TypeCoachAccept:    "A coach accepted your request",
	model.TypeCoachRefuse:    "A coach declined your request",
	model.TypeSearchClub:     "A coach is looking for a club",
	model.TypeClubAccept:     "A club accepted your request",
	model.TypeClubRefuse:     "A club declined your request",
	model.TypeNewSubscriber:  "New subscriber",
	model.TypeSubscriptionOK: "Your subscription is validated",
	model.TypeMessage:        "New message",
}

func subjectFor(t string) string {
	if s, ok := subjects[t]; ok {
		return s
	}
	return subjects[model.TypeMessage]
}

// Notify stores the notifications then publishes and mails each of them.
// Delivery failures are logged; the stored rows are the source of truth.
func (s *NotificationService) Notify(ctx context.Context, from *uuid.UUID, to []uuid.UUID, typ, message string) ([]model.NotificationModel, error) {
	if typ == "" {
		typ = model.TypeMessage
	}
	if !model.IsValidType(typ) {
		return nil, fmt.Errorf("%w: unknown notification type", helper.ErrInvalidInput)
	}
	rows := make([]model.NotificationModel, 0, len(to))
	seen := make(map[uuid.UUID]bool, len(to))
	for _, id := range to {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, model.NotificationModel{
			NotificationFromUserID: from,
			NotificationToUserID:   id,
			NotificationType:       typ,
			NotificationMessage:    message,
		})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	s.deliver(ctx, rows)
	return rows, nil
}

func (s *NotificationService) deliver(ctx context.Context, rows []model.NotificationModel) {
	for _, n := range rows {
		if err := s.Publisher.Publish(ctx, n); err != nil {
			log.Printf("[NOTIFY] publish %s failed: %v", n.NotificationID, err)
		}
	}
	if s.Mailer == nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, n := range rows {
		ids = append(ids, n.NotificationToUserID)
	}
	var users []userModel.UserModel
	if err := s.DB.WithContext(ctx).Select("id", "user_name", "email").Where("id IN ?", ids).Find(&users).Error; err != nil {
		log.Printf("[NOTIFY] load recipients failed: %v", err)
		return
	}
	byID := make(map[uuid.UUID]userModel.UserModel, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, n := range rows {
		u, ok := byID[n.NotificationToUserID]
		if !ok || u.Email == "" {
			continue
		}
		if err := s.Mailer.Send(ctx, u.UserName, u.Email, subjectFor(n.NotificationType), n.NotificationMessage); err != nil {
			log.Printf("[NOTIFY] mail to %s failed: %v", u.ID, err)
		}
	}
}

// NotifyClubMembers reaches every member subscribed to one of the club's subscriptions.
func (s *NotificationService) NotifyClubMembers(ctx context.Context, actor helper.Actor, clubID uuid.UUID, typ, message string) ([]model.NotificationModel, error) {
	if _, err := clubService.EnsureClubManager(ctx, s.DB, clubID, actor); err != nil {
		return nil, err
	}
	var members []uuid.UUID
	err := s.DB.WithContext(ctx).Table("subscription_members AS sm").
		Joins("JOIN subscriptions s ON s.subscription_id = sm.subscription_id").
		Where("s.subscription_club_id = ?", clubID).
		Distinct().
		Pluck("sm.user_id", &members).Error
	if err != nil {
		return nil, err
	}
	from := actor.UserID
	return s.Notify(ctx, &from, members, typ, message)
}

func (s *NotificationService) ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.NotificationModel, error) {
	out := []model.NotificationModel{}
	q := s.DB.WithContext(ctx).Where("notification_to_user_id = ?", userID)
	if unreadOnly {
		q = q.Where("notification_read_at IS NULL")
	}
	err := q.Order("notification_created_at DESC").Limit(200).Find(&out).Error
	return out, err
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_to_user_id = ? AND notification_read_at IS NULL", id, userID).
		Update("notification_read_at", s.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
			Where("notification_id = ? AND notification_to_user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_to_user_id = ? AND notification_read_at IS NULL", userID).
		Update("notification_read_at", s.Now())
	return res.RowsAffected, res.Error
}
