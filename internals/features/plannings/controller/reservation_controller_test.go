package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/plannings/dto"
	planningModel "videoach_backend/internals/features/plannings/model"
	"videoach_backend/internals/features/plannings/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservations struct {
	err       error
	member    uuid.UUID
	slot      uuid.UUID
	deletedBy helper.Actor
	deleted   uuid.UUID
}

func (f *fakeReservations) GetMemberDailyPlanning(_ context.Context, memberID uuid.UUID, _ time.Time) ([]dto.DailyPlanning, error) {
	f.member = memberID
	return []dto.DailyPlanning{}, f.err
}

func (f *fakeReservations) CreatePlanningReservation(_ context.Context, memberID, slot uuid.UUID, date time.Time) (*planningModel.ReservationModel, error) {
	f.member, f.slot = memberID, slot
	if f.err != nil {
		return nil, f.err
	}
	return &planningModel.ReservationModel{
		ReservationID:                 uuid.New(),
		ReservationUserID:             memberID,
		ReservationDate:               date,
		ReservationPlanningActivityID: &slot,
	}, nil
}

func (f *fakeReservations) CreateActivityReservation(_ context.Context, memberID, activityID, roomID uuid.UUID, date time.Time) (*planningModel.ReservationModel, error) {
	f.member = memberID
	if f.err != nil {
		return nil, f.err
	}
	return &planningModel.ReservationModel{ReservationID: uuid.New(), ReservationActivityID: &activityID, ReservationRoomID: &roomID}, nil
}

func (f *fakeReservations) DeleteReservation(_ context.Context, actor helper.Actor, id uuid.UUID) error {
	f.deletedBy, f.deleted = actor, id
	return f.err
}

func (f *fakeReservations) ReservationQR(context.Context, helper.Actor, uuid.UUID) ([]byte, error) {
	return []byte("\x89PNG"), f.err
}

func (f *fakeReservations) CheckIn(context.Context, string) (*planningModel.ReservationModel, error) {
	return &planningModel.ReservationModel{}, f.err
}

func newReservationApp(svc Reservations, userID uuid.UUID, role string) *fiber.App {
	ctrl := NewReservationController(svc)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(helper.LocUserID, userID.String())
			c.Locals(helper.LocUserRole, role)
		}
		return c.Next()
	})
	app.Post("/api/planning", ctrl.LegacyCreate)
	app.Delete("/api/planning", ctrl.LegacyDelete)
	app.Post("/api/reservations/planning", ctrl.CreatePlanningReservation)
	app.Get("/api/reservations/:id/qr", ctrl.GetReservationQR)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, payload string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestLegacyCreateReservation(t *testing.T) {
	member := uuid.New()
	slot := uuid.New()
	valid := `{"planningActivityId":"` + slot.String() + `","date":"2024-09-02T18:00:00Z"}`

	t.Run("anonymous", func(t *testing.T) {
		status, body := do(t, newReservationApp(&fakeReservations{}, uuid.Nil, ""), http.MethodPost, "/api/planning", valid)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("malformed body", func(t *testing.T) {
		status, body := do(t, newReservationApp(&fakeReservations{}, member, constants.RoleMember), http.MethodPost, "/api/planning", `{"planningActivityId":`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("bad slot id", func(t *testing.T) {
		status, body := do(t, newReservationApp(&fakeReservations{}, member, constants.RoleMember), http.MethodPost, "/api/planning", `{"planningActivityId":"x","date":"2024-09-02T18:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("booking for somebody else", func(t *testing.T) {
		payload := `{"planningActivityId":"` + slot.String() + `","memberId":"` + uuid.NewString() + `","date":"2024-09-02T18:00:00Z"}`
		status, body := do(t, newReservationApp(&fakeReservations{}, member, constants.RoleMember), http.MethodPost, "/api/planning", payload)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("service refuses", func(t *testing.T) {
		fake := &fakeReservations{err: service.ErrRoomFull}
		status, body := do(t, newReservationApp(fake, member, constants.RoleMember), http.MethodPost, "/api/planning", valid)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("ok", func(t *testing.T) {
		fake := &fakeReservations{}
		status, body := do(t, newReservationApp(fake, member, constants.RoleMember), http.MethodPost, "/api/planning", valid)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, member, fake.member)
		assert.Equal(t, slot, fake.slot)
		assert.Contains(t, body, slot.String())
	})
}

func TestLegacyDeleteReservation(t *testing.T) {
	member := uuid.New()
	id := uuid.New()

	t.Run("not a json string", func(t *testing.T) {
		status, body := do(t, newReservationApp(&fakeReservations{}, member, constants.RoleMember), http.MethodDelete, "/api/planning", `{"id":"`+id.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("not owned", func(t *testing.T) {
		fake := &fakeReservations{err: helper.ErrForbidden}
		status, body := do(t, newReservationApp(fake, member, constants.RoleMember), http.MethodDelete, "/api/planning", `"`+id.String()+`"`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Erreur", body)
	})

	t.Run("ok", func(t *testing.T) {
		fake := &fakeReservations{}
		status, body := do(t, newReservationApp(fake, member, constants.RoleMember), http.MethodDelete, "/api/planning", `"`+id.String()+`"`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, `"`+id.String()+`"`, body)
		assert.Equal(t, id, fake.deleted)
		assert.Equal(t, member, fake.deletedBy.UserID)
	})
}

func TestCreatePlanningReservationStatuses(t *testing.T) {
	member := uuid.New()
	payload := `{"planning_activity_id":"` + uuid.NewString() + `","date":"2024-09-02T18:00:00Z"}`

	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusCreated},
		{helper.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrNotEntitled, http.StatusForbidden},
		{service.ErrRoomFull, http.StatusConflict},
	}
	for _, tc := range cases {
		status, _ := do(t, newReservationApp(&fakeReservations{err: tc.err}, member, constants.RoleMember), http.MethodPost, "/api/reservations/planning", payload)
		assert.Equal(t, tc.status, status, "%v", tc.err)
	}
}

func TestReservationQRIsPNG(t *testing.T) {
	app := newReservationApp(&fakeReservations{}, uuid.New(), constants.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/"+uuid.NewString()+"/qr", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}
