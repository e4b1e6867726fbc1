package model

import (
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

// Subscription modes
const (
	ModeAllInclusive  = "ALL_INCLUSIVE"
	ModeActivityGroup = "ACTIVITY_GROUP"
	ModeActivity      = "ACTIVITY"
	ModeCourse        = "COURSE"
	ModeDay           = "DAY"
)

// Subscription restrictions
const (
	RestrictionClub = "CLUB"
	RestrictionSite = "SITE"
	RestrictionRoom = "ROOM"
)

var (
	Modes        = []string{ModeAllInclusive, ModeActivityGroup, ModeActivity, ModeCourse, ModeDay}
	Restrictions = []string{RestrictionClub, RestrictionSite, RestrictionRoom}
)

type SubscriptionModel struct {
	SubscriptionID             uuid.UUID  `gorm:"column:subscription_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"subscription_id"`
	SubscriptionClubID         uuid.UUID  `gorm:"column:subscription_club_id;type:uuid;not null;index" json:"subscription_club_id"`
	SubscriptionName           string     `gorm:"column:subscription_name;type:text;not null" json:"subscription_name"`
	SubscriptionDescription    string     `gorm:"column:subscription_description;type:text;not null;default:''" json:"subscription_description"`
	SubscriptionHighlight      string     `gorm:"column:subscription_highlight;type:text;not null;default:''" json:"subscription_highlight"`
	SubscriptionStartDate      time.Time  `gorm:"column:subscription_start_date;not null" json:"subscription_start_date"`
	SubscriptionMonthly        float64    `gorm:"column:subscription_monthly;not null;default:0" json:"subscription_monthly"`
	SubscriptionYearly         float64    `gorm:"column:subscription_yearly;not null;default:0" json:"subscription_yearly"`
	SubscriptionCancelationFee float64    `gorm:"column:subscription_cancelation_fee;not null;default:0" json:"subscription_cancelation_fee"`
	SubscriptionInscriptionFee float64    `gorm:"column:subscription_inscription_fee;not null;default:0" json:"subscription_inscription_fee"`
	SubscriptionMode           string     `gorm:"column:subscription_mode;type:varchar(20);not null;default:'ALL_INCLUSIVE'" json:"subscription_mode"`
	SubscriptionRestriction    string     `gorm:"column:subscription_restriction;type:varchar(10);not null;default:'CLUB'" json:"subscription_restriction"`
	SubscriptionDeleted        bool       `gorm:"column:subscription_deleted;not null;default:false" json:"subscription_deleted"`
	SubscriptionDeletionDate   *time.Time `gorm:"column:subscription_deletion_date" json:"subscription_deletion_date,omitempty"`

	Club           *clubModel.ClubModel           `gorm:"foreignKey:SubscriptionClubID;references:ClubID" json:"club,omitempty"`
	ActivityGroups []clubModel.ActivityGroupModel `gorm:"many2many:subscription_activity_groups;foreignKey:SubscriptionID;joinForeignKey:subscription_id;references:ActivityGroupID;joinReferences:activity_group_id" json:"activity_groups,omitempty"`
	Activities     []clubModel.ActivityModel      `gorm:"many2many:subscription_activities;foreignKey:SubscriptionID;joinForeignKey:subscription_id;references:ActivityID;joinReferences:activity_id" json:"activities,omitempty"`
	Sites          []clubModel.SiteModel          `gorm:"many2many:subscription_sites;foreignKey:SubscriptionID;joinForeignKey:subscription_id;references:SiteID;joinReferences:site_id" json:"sites,omitempty"`
	Rooms          []clubModel.RoomModel          `gorm:"many2many:subscription_rooms;foreignKey:SubscriptionID;joinForeignKey:subscription_id;references:RoomID;joinReferences:room_id" json:"rooms,omitempty"`
	Members        []userModel.UserModel          `gorm:"many2many:subscription_members;foreignKey:SubscriptionID;joinForeignKey:subscription_id;references:ID;joinReferences:user_id" json:"-"`

	SubscriptionCreatedAt time.Time `gorm:"column:subscription_created_at;autoCreateTime" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time `gorm:"column:subscription_updated_at;autoUpdateTime" json:"subscription_updated_at"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// SubscriptionMemberModel is the join row of subscription_members.
type SubscriptionMemberModel struct {
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;index"`
}

func (SubscriptionMemberModel) TableName() string { return "subscription_members" }

func IsValidMode(m string) bool {
	for _, x := range Modes {
		if x == m {
			return true
		}
	}
	return false
}

func IsValidRestriction(r string) bool {
	for _, x := range Restrictions {
		if x == r {
			return true
		}
	}
	return false
}

func (s *SubscriptionModel) ActivityGroupIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ActivityGroups))
	for _, g := range s.ActivityGroups {
		out = append(out, g.ActivityGroupID)
	}
	return out
}

func (s *SubscriptionModel) ActivityIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.Activities))
	for _, a := range s.Activities {
		out = append(out, a.ActivityID)
	}
	return out
}

func (s *SubscriptionModel) SiteIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.Sites))
	for _, x := range s.Sites {
		out = append(out, x.SiteID)
	}
	return out
}

func (s *SubscriptionModel) RoomIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.Rooms))
	for _, x := range s.Rooms {
		out = append(out, x.RoomID)
	}
	return out
}
