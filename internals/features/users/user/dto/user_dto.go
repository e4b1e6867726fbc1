package dto

import (
	"strings"
	"time"

	"videoach_backend/internals/constants"
	subModel "videoach_backend/internals/features/subscriptions/model"
	uModel "videoach_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// UpdateUserRequest is the admin partial update. Pointers tell omit from zero.
type UpdateUserRequest struct {
	UserName  *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=MEMBER COACH MANAGER MANAGER_COACH ADMIN"`
	PricingID *string `json:"pricing_id,omitempty" validate:"omitempty,uuid"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

// Updates builds the column map. An empty pricing_id clears the pricing.
func (r *UpdateUserRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.UserName != nil {
		out["user_name"] = *r.UserName
	}
	if r.Email != nil {
		out["email"] = *r.Email
	}
	if r.Role != nil {
		out["role"] = *r.Role
	}
	if r.PricingID != nil {
		if id, err := uuid.Parse(*r.PricingID); err == nil {
			out["pricing_id"] = id
		} else {
			out["pricing_id"] = nil
		}
	}
	if r.IsActive != nil {
		out["is_active"] = *r.IsActive
	}
	return out
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	RoleLabel string     `json:"role_label"`
	PricingID *uuid.UUID `json:"pricing_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		RoleLabel: constants.RoleLabel(u.Role),
		PricingID: u.PricingID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func FromModels(list []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

// UserDetail is the signed-in view: what the UI needs to pick menus and plannings.
type UserDetail struct {
	ID            uuid.UUID                    `json:"id"`
	Name          string                       `json:"name"`
	Email         string                       `json:"email"`
	Role          string                       `json:"role"`
	PricingID     *uuid.UUID                   `json:"pricing_id,omitempty"`
	Features      []string                     `json:"features"`
	Subscriptions []subModel.SubscriptionModel `json:"subscriptions"`
}

// Visitor is returned for an unknown user id.
func Visitor() UserDetail {
	return UserDetail{Role: constants.RoleVisitor, Features: []string{}, Subscriptions: []subModel.SubscriptionModel{}}
}
