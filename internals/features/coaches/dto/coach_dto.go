package dto

import (
	"strings"
	"time"

	"videoach_backend/internals/features/coaches/model"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

type CoachProfileRequest struct {
	PublicName    string  `json:"coach_profile_public_name" validate:"required,max=120"`
	Description   string  `json:"coach_profile_description" validate:"max=500"`
	AboutMe       string  `json:"coach_profile_about_me" validate:"max=4000"`
	SearchAddress *string `json:"coach_profile_search_address"`
	Longitude     float64 `json:"coach_profile_longitude" validate:"gte=-180,lte=180"`
	Latitude      float64 `json:"coach_profile_latitude" validate:"gte=-90,lte=90"`
	Range         int     `json:"coach_profile_range" validate:"gte=0,lte=100"`
	Facebook      *string `json:"coach_profile_facebook" validate:"omitempty,url"`
	Instagram     *string `json:"coach_profile_instagram" validate:"omitempty,url"`
	Youtube       *string `json:"coach_profile_youtube" validate:"omitempty,url"`
}

func (r CoachProfileRequest) Columns() map[string]any {
	rng := r.Range
	if rng == 0 {
		rng = 10
	}
	return map[string]any{
		"coach_profile_public_name":    r.PublicName,
		"coach_profile_description":    r.Description,
		"coach_profile_about_me":       r.AboutMe,
		"coach_profile_search_address": r.SearchAddress,
		"coach_profile_longitude":      r.Longitude,
		"coach_profile_latitude":       r.Latitude,
		"coach_profile_range":          rng,
		"coach_profile_facebook":       r.Facebook,
		"coach_profile_instagram":      r.Instagram,
		"coach_profile_youtube":        r.Youtube,
	}
}

func (r CoachProfileRequest) ToModel(userID uuid.UUID) model.CoachProfileModel {
	c := r.Columns()
	return model.CoachProfileModel{
		CoachProfileUserID:      userID,
		CoachProfilePublicName:  r.PublicName,
		CoachProfileDescription: r.Description,
		CoachProfileAboutMe:     r.AboutMe,
		CoachProfileSearchAddr:  r.SearchAddress,
		CoachProfileLongitude:   r.Longitude,
		CoachProfileLatitude:    r.Latitude,
		CoachProfileRange:       c["coach_profile_range"].(int),
		CoachProfileFacebook:    r.Facebook,
		CoachProfileInstagram:   r.Instagram,
		CoachProfileYoutube:     r.Youtube,
	}
}

type CoachOfferRequest struct {
	Name            string  `json:"coach_offer_name" validate:"required,max=120"`
	Target          string  `json:"coach_offer_target" validate:"omitempty,oneof=INDIVIDUAL COMPANY"`
	ExcludingTaxes  bool    `json:"coach_offer_excluding_taxes"`
	Description     string  `json:"coach_offer_description" validate:"max=4000"`
	StartDate       string  `json:"coach_offer_start_date"`
	Physical        bool    `json:"coach_offer_physical"`
	InHouse         bool    `json:"coach_offer_in_house"`
	MyPlace         bool    `json:"coach_offer_my_place"`
	PublicPlace     bool    `json:"coach_offer_public_place"`
	PerHourPhysical float64 `json:"coach_offer_per_hour_physical" validate:"gte=0"`
	PerDayPhysical  float64 `json:"coach_offer_per_day_physical" validate:"gte=0"`
	TravelFee       float64 `json:"coach_offer_travel_fee" validate:"gte=0"`
	TravelLimit     int     `json:"coach_offer_travel_limit" validate:"gte=0"`
	Webcam          bool    `json:"coach_offer_webcam"`
	PerHourWebcam   float64 `json:"coach_offer_per_hour_webcam" validate:"gte=0"`
	PerDayWebcam    float64 `json:"coach_offer_per_day_webcam" validate:"gte=0"`
	FreeHours       int     `json:"coach_offer_free_hours" validate:"gte=0"`
}

// TargetOrDefault is INDIVIDUAL unless COMPANY is asked.
func (r CoachOfferRequest) TargetOrDefault() string {
	if strings.ToUpper(r.Target) == model.TargetCompany {
		return model.TargetCompany
	}
	return model.TargetIndividual
}

func (r CoachOfferRequest) ToModel(coachID uuid.UUID) (model.CoachOfferModel, error) {
	var start *time.Time
	if strings.TrimSpace(r.StartDate) != "" {
		t, err := dbtime.ParseDate(r.StartDate)
		if err != nil {
			return model.CoachOfferModel{}, err
		}
		start = &t
	}
	return model.CoachOfferModel{
		CoachOfferCoachID:         coachID,
		CoachOfferName:            r.Name,
		CoachOfferTarget:          r.TargetOrDefault(),
		CoachOfferExcludingTaxes:  r.ExcludingTaxes,
		CoachOfferDescription:     r.Description,
		CoachOfferStartDate:       start,
		CoachOfferPhysical:        r.Physical,
		CoachOfferInHouse:         r.InHouse,
		CoachOfferMyPlace:         r.MyPlace,
		CoachOfferPublicPlace:     r.PublicPlace,
		CoachOfferPerHourPhysical: r.PerHourPhysical,
		CoachOfferPerDayPhysical:  r.PerDayPhysical,
		CoachOfferTravelFee:       r.TravelFee,
		CoachOfferTravelLimit:     r.TravelLimit,
		CoachOfferWebcam:          r.Webcam,
		CoachOfferPerHourWebcam:   r.PerHourWebcam,
		CoachOfferPerDayWebcam:    r.PerDayWebcam,
		CoachOfferFreeHours:       r.FreeHours,
	}, nil
}

type LinkCoachRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type CertificationGroupRequest struct {
	Name    string   `json:"certification_group_name" validate:"required,max=120"`
	Modules []string `json:"modules" validate:"dive,required,max=120"`
}

type CertificationModuleRequest struct {
	Name             string      `json:"certification_module_name" validate:"required,max=120"`
	ActivityGroupIDs []uuid.UUID `json:"activity_group_ids"`
}

type CertificationRequest struct {
	Name             string      `json:"certification_name" validate:"required,max=200"`
	ObtainedIn       string      `json:"certification_obtained_in" validate:"required"`
	GroupID          *uuid.UUID  `json:"certification_group_id"`
	Document         *string     `json:"certification_document" validate:"omitempty,url"`
	ModuleIDs        []uuid.UUID `json:"module_ids"`
	ActivityGroupIDs []uuid.UUID `json:"activity_group_ids"`
}
