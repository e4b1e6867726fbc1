package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"videoach_backend/internals/features/notifications/dto"
	"videoach_backend/internals/features/notifications/model"
	helper "videoach_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessageKeysByRecipient(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	n := model.NotificationModel{
		NotificationID:         uuid.New(),
		NotificationFromUserID: &from,
		NotificationToUserID:   to,
		NotificationType:       model.TypeNewSubscriber,
		NotificationMessage:    "hello",
		NotificationCreatedAt:  time.Unix(1700000000, 0),
	}
	msg, err := toMessage(n)
	require.NoError(t, err)
	assert.Equal(t, to.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, model.TypeNewSubscriber, string(msg.Headers[0].Value))

	var ev dto.Event
	require.NoError(t, sonic.Unmarshal(msg.Value, &ev))
	assert.Equal(t, n.NotificationID, ev.ID)
	assert.Equal(t, &from, ev.From)
	assert.Equal(t, int64(1700000000), ev.CreatedAt)
}

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, "topic")
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), model.NotificationModel{}))
	assert.NoError(t, p.Close())
}

func TestNewMailerWithoutKey(t *testing.T) {
	assert.Nil(t, NewMailer("", "no-reply@example.com"))
}

func TestBuildMailPrefixesSubject(t *testing.T) {
	m := buildMail(sgmail.NewEmail("Videoach", "no-reply@example.com"), "Sam", "sam@example.com", "New message", "body")
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[Videoach] New message", m.Subject)
	assert.Equal(t, "sam@example.com", m.Personalizations[0].To[0].Address)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
}

func TestSubjectFallsBackToMessage(t *testing.T) {
	assert.Equal(t, "New subscriber", subjectFor(model.TypeNewSubscriber))
	assert.Equal(t, "New message", subjectFor("UNKNOWN"))
}

func TestNotifyRejectsUnknownType(t *testing.T) {
	s := NewNotificationService(nil, nil, nil)
	_, err := s.Notify(context.Background(), nil, []uuid.UUID{uuid.New()}, "PING", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))
}

func TestNotifyWithoutRecipientsWritesNothing(t *testing.T) {
	s := NewNotificationService(nil, nil, nil)
	out, err := s.Notify(context.Background(), nil, []uuid.UUID{uuid.Nil}, "", "x")
	require.NoError(t, err)
	assert.Empty(t, out)
}
