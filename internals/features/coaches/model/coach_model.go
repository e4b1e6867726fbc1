package model

import (
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"

	"github.com/google/uuid"
)

type CoachProfileModel struct {
	CoachProfileID          uuid.UUID `gorm:"column:coach_profile_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"coach_profile_id"`
	CoachProfileUserID      uuid.UUID `gorm:"column:coach_profile_user_id;type:uuid;not null;uniqueIndex" json:"coach_profile_user_id"`
	CoachProfilePublicName  string    `gorm:"column:coach_profile_public_name;type:text;not null;default:''" json:"coach_profile_public_name"`
	CoachProfileDescription string    `gorm:"column:coach_profile_description;type:text;not null;default:''" json:"coach_profile_description"`
	CoachProfileAboutMe     string    `gorm:"column:coach_profile_about_me;type:text;not null;default:''" json:"coach_profile_about_me"`
	CoachProfileSearchAddr  *string   `gorm:"column:coach_profile_search_address;type:text" json:"coach_profile_search_address,omitempty"`
	CoachProfileLongitude   float64   `gorm:"column:coach_profile_longitude;not null;default:0" json:"coach_profile_longitude"`
	CoachProfileLatitude    float64   `gorm:"column:coach_profile_latitude;not null;default:0" json:"coach_profile_latitude"`
	CoachProfileRange       int       `gorm:"column:coach_profile_range;not null;default:10" json:"coach_profile_range"`
	CoachProfileFacebook    *string   `gorm:"column:coach_profile_facebook;type:text" json:"coach_profile_facebook,omitempty"`
	CoachProfileInstagram   *string   `gorm:"column:coach_profile_instagram;type:text" json:"coach_profile_instagram,omitempty"`
	CoachProfileYoutube     *string   `gorm:"column:coach_profile_youtube;type:text" json:"coach_profile_youtube,omitempty"`

	CoachProfileCreatedAt time.Time `gorm:"column:coach_profile_created_at;autoCreateTime" json:"coach_profile_created_at"`
	CoachProfileUpdatedAt time.Time `gorm:"column:coach_profile_updated_at;autoUpdateTime" json:"coach_profile_updated_at"`
}

func (CoachProfileModel) TableName() string { return "coach_profiles" }

// Coaching targets
const (
	TargetIndividual = "INDIVIDUAL"
	TargetCompany    = "COMPANY"
)

type CoachOfferModel struct {
	CoachOfferID              uuid.UUID  `gorm:"column:coach_offer_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"coach_offer_id"`
	CoachOfferCoachID         uuid.UUID  `gorm:"column:coach_offer_coach_id;type:uuid;not null;index" json:"coach_offer_coach_id"`
	CoachOfferName            string     `gorm:"column:coach_offer_name;type:text;not null" json:"coach_offer_name"`
	CoachOfferTarget          string     `gorm:"column:coach_offer_target;type:varchar(12);not null;default:'INDIVIDUAL'" json:"coach_offer_target"`
	CoachOfferExcludingTaxes  bool       `gorm:"column:coach_offer_excluding_taxes;not null;default:false" json:"coach_offer_excluding_taxes"`
	CoachOfferDescription     string     `gorm:"column:coach_offer_description;type:text;not null;default:''" json:"coach_offer_description"`
	CoachOfferStartDate       *time.Time `gorm:"column:coach_offer_start_date" json:"coach_offer_start_date,omitempty"`
	CoachOfferPhysical        bool       `gorm:"column:coach_offer_physical;not null;default:false" json:"coach_offer_physical"`
	CoachOfferInHouse         bool       `gorm:"column:coach_offer_in_house;not null;default:false" json:"coach_offer_in_house"`
	CoachOfferMyPlace         bool       `gorm:"column:coach_offer_my_place;not null;default:false" json:"coach_offer_my_place"`
	CoachOfferPublicPlace     bool       `gorm:"column:coach_offer_public_place;not null;default:false" json:"coach_offer_public_place"`
	CoachOfferPerHourPhysical float64    `gorm:"column:coach_offer_per_hour_physical;not null;default:0" json:"coach_offer_per_hour_physical"`
	CoachOfferPerDayPhysical  float64    `gorm:"column:coach_offer_per_day_physical;not null;default:0" json:"coach_offer_per_day_physical"`
	CoachOfferTravelFee       float64    `gorm:"column:coach_offer_travel_fee;not null;default:0" json:"coach_offer_travel_fee"`
	CoachOfferTravelLimit     int        `gorm:"column:coach_offer_travel_limit;not null;default:0" json:"coach_offer_travel_limit"`
	CoachOfferWebcam          bool       `gorm:"column:coach_offer_webcam;not null;default:false" json:"coach_offer_webcam"`
	CoachOfferPerHourWebcam   float64    `gorm:"column:coach_offer_per_hour_webcam;not null;default:0" json:"coach_offer_per_hour_webcam"`
	CoachOfferPerDayWebcam    float64    `gorm:"column:coach_offer_per_day_webcam;not null;default:0" json:"coach_offer_per_day_webcam"`
	CoachOfferFreeHours       int        `gorm:"column:coach_offer_free_hours;not null;default:0" json:"coach_offer_free_hours"`

	CoachOfferCreatedAt time.Time `gorm:"column:coach_offer_created_at;autoCreateTime" json:"coach_offer_created_at"`
	CoachOfferUpdatedAt time.Time `gorm:"column:coach_offer_updated_at;autoUpdateTime" json:"coach_offer_updated_at"`
}

func (CoachOfferModel) TableName() string { return "coach_offers" }

type CertificationGroupModel struct {
	CertificationGroupID   uuid.UUID `gorm:"column:certification_group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"certification_group_id"`
	CertificationGroupName string    `gorm:"column:certification_group_name;type:text;not null;uniqueIndex" json:"certification_group_name"`

	Modules []CertificationModuleModel `gorm:"foreignKey:CertificationModuleGroupID;references:CertificationGroupID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

func (CertificationGroupModel) TableName() string { return "certification_groups" }

type CertificationModuleModel struct {
	CertificationModuleID      uuid.UUID `gorm:"column:certification_module_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"certification_module_id"`
	CertificationModuleGroupID uuid.UUID `gorm:"column:certification_module_group_id;type:uuid;not null;index" json:"certification_module_group_id"`
	CertificationModuleName    string    `gorm:"column:certification_module_name;type:text;not null" json:"certification_module_name"`

	ActivityGroups []clubModel.ActivityGroupModel `gorm:"many2many:certification_module_activity_groups;foreignKey:CertificationModuleID;joinForeignKey:certification_module_id;references:ActivityGroupID;joinReferences:activity_group_id" json:"activity_groups,omitempty"`
}

func (CertificationModuleModel) TableName() string { return "certification_modules" }

type CertificationModel struct {
	CertificationID         uuid.UUID  `gorm:"column:certification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"certification_id"`
	CertificationCoachID    uuid.UUID  `gorm:"column:certification_coach_id;type:uuid;not null;index" json:"certification_coach_id"`
	CertificationName       string     `gorm:"column:certification_name;type:text;not null" json:"certification_name"`
	CertificationObtainedIn time.Time  `gorm:"column:certification_obtained_in;not null" json:"certification_obtained_in"`
	CertificationGroupID    *uuid.UUID `gorm:"column:certification_group_id;type:uuid" json:"certification_group_id,omitempty"`
	CertificationDocument   *string    `gorm:"column:certification_document;type:text" json:"certification_document,omitempty"`

	Modules        []CertificationModuleModel     `gorm:"many2many:certification_certification_modules;foreignKey:CertificationID;joinForeignKey:certification_id;references:CertificationModuleID;joinReferences:certification_module_id" json:"modules,omitempty"`
	ActivityGroups []clubModel.ActivityGroupModel `gorm:"many2many:certification_activity_groups;foreignKey:CertificationID;joinForeignKey:certification_id;references:ActivityGroupID;joinReferences:activity_group_id" json:"activity_groups,omitempty"`

	CertificationCreatedAt time.Time `gorm:"column:certification_created_at;autoCreateTime" json:"certification_created_at"`
}

func (CertificationModel) TableName() string { return "certifications" }
