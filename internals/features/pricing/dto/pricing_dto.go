package dto

import (
	pricingModel "videoach_backend/internals/features/pricing/model"
)

// PricingRequest creates or replaces a pricing with its options and features.
type PricingRequest struct {
	PricingRoleTarget  string   `json:"pricing_role_target" validate:"required,oneof=MEMBER COACH MANAGER MANAGER_COACH"`
	PricingTitle       string   `json:"pricing_title" validate:"required,min=2,max=120"`
	PricingDescription string   `json:"pricing_description" validate:"max=2000"`
	PricingFree        bool     `json:"pricing_free"`
	PricingHighlighted bool     `json:"pricing_highlighted"`
	PricingMonthly     float64  `json:"pricing_monthly" validate:"gte=0"`
	PricingYearly      float64  `json:"pricing_yearly" validate:"gte=0"`
	Options            []string `json:"options" validate:"dive,required"`
	Features           []string `json:"features"`
}

// ToModel keeps the options in the given order through their weight.
func (r PricingRequest) ToModel() pricingModel.PricingModel {
	m := pricingModel.PricingModel{
		PricingRoleTarget:  r.PricingRoleTarget,
		PricingTitle:       r.PricingTitle,
		PricingDescription: r.PricingDescription,
		PricingFree:        r.PricingFree,
		PricingHighlighted: r.PricingHighlighted,
		PricingMonthly:     r.PricingMonthly,
		PricingYearly:      r.PricingYearly,
	}
	if m.PricingFree {
		m.PricingMonthly, m.PricingYearly = 0, 0
	}
	for i, o := range r.Options {
		m.Options = append(m.Options, pricingModel.PricingOptionModel{PricingOptionName: o, PricingOptionWeight: i})
	}
	seen := map[string]bool{}
	for _, f := range r.Features {
		if seen[f] {
			continue
		}
		seen[f] = true
		m.Features = append(m.Features, pricingModel.PricingFeatureModel{PricingFeatureFeature: f})
	}
	return m
}
