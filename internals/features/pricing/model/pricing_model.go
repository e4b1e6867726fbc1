package model

import (
	"time"

	"github.com/google/uuid"
)

// PricingModel is a SaaS plan sold to one role.
type PricingModel struct {
	PricingID           uuid.UUID  `gorm:"column:pricing_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"pricing_id"`
	PricingRoleTarget   string     `gorm:"column:pricing_role_target;type:varchar(20);not null;index" json:"pricing_role_target"`
	PricingTitle        string     `gorm:"column:pricing_title;type:text;not null" json:"pricing_title"`
	PricingDescription  string     `gorm:"column:pricing_description;type:text;not null;default:''" json:"pricing_description"`
	PricingFree         bool       `gorm:"column:pricing_free;not null;default:false" json:"pricing_free"`
	PricingHighlighted  bool       `gorm:"column:pricing_highlighted;not null;default:false" json:"pricing_highlighted"`
	PricingMonthly      float64    `gorm:"column:pricing_monthly;not null;default:0" json:"pricing_monthly"`
	PricingYearly       float64    `gorm:"column:pricing_yearly;not null;default:0" json:"pricing_yearly"`
	PricingDeleted      bool       `gorm:"column:pricing_deleted;not null;default:false" json:"pricing_deleted"`
	PricingDeletionDate *time.Time `gorm:"column:pricing_deletion_date" json:"pricing_deletion_date,omitempty"`

	Options  []PricingOptionModel  `gorm:"foreignKey:PricingOptionPricingID;references:PricingID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Features []PricingFeatureModel `gorm:"foreignKey:PricingFeaturePricingID;references:PricingID;constraint:OnDelete:CASCADE" json:"features,omitempty"`

	PricingCreatedAt time.Time `gorm:"column:pricing_created_at;autoCreateTime" json:"pricing_created_at"`
	PricingUpdatedAt time.Time `gorm:"column:pricing_updated_at;autoUpdateTime" json:"pricing_updated_at"`
}

func (PricingModel) TableName() string { return "pricings" }

type PricingOptionModel struct {
	PricingOptionID        uuid.UUID `gorm:"column:pricing_option_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"pricing_option_id"`
	PricingOptionPricingID uuid.UUID `gorm:"column:pricing_option_pricing_id;type:uuid;not null;index" json:"-"`
	PricingOptionName      string    `gorm:"column:pricing_option_name;type:text;not null" json:"pricing_option_name"`
	PricingOptionWeight    int       `gorm:"column:pricing_option_weight;not null;default:0" json:"pricing_option_weight"`
}

func (PricingOptionModel) TableName() string { return "pricing_options" }

type PricingFeatureModel struct {
	PricingFeatureID        uuid.UUID `gorm:"column:pricing_feature_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"pricing_feature_id"`
	PricingFeaturePricingID uuid.UUID `gorm:"column:pricing_feature_pricing_id;type:uuid;not null;uniqueIndex:uq_pricing_feature" json:"-"`
	PricingFeatureFeature   string    `gorm:"column:pricing_feature_feature;type:varchar(40);not null;uniqueIndex:uq_pricing_feature" json:"pricing_feature_feature"`
}

func (PricingFeatureModel) TableName() string { return "pricing_features" }

// FeatureNames flattens Features.
func (p *PricingModel) FeatureNames() []string {
	out := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		out = append(out, f.PricingFeatureFeature)
	}
	return out
}

// Price returns the amount due for a MONTHLY or YEARLY period.
func (p *PricingModel) Price(period string) float64 {
	if period == PeriodYearly {
		return p.PricingYearly
	}
	return p.PricingMonthly
}

const (
	PeriodMonthly = "MONTHLY"
	PeriodYearly  = "YEARLY"
)
