// Package plans is the catalogue of default SaaS plans: what each sells, what it
// costs and how far its holder may grow.
package plans

import (
	"context"
	"fmt"
	"log"

	"videoach_backend/internals/constants"
	pricingModel "videoach_backend/internals/features/pricing/model"

	"gorm.io/gorm"
)

// Unlimited marks a limit that does not apply.
const Unlimited = -1

type Limits struct {
	MaxClubs          int `json:"max_clubs"`
	MaxSites          int `json:"max_sites"`
	MaxRooms          int `json:"max_rooms"`
	MaxOffers         int `json:"max_offers"`
	MaxCompanyOffers  int `json:"max_company_offers"`
	MaxCertifications int `json:"max_certifications"`
	MaxMeetings       int `json:"max_meetings"`
	// clubs a member may subscribe to
	MaxNumberOfClubs int `json:"max_number_of_clubs"`
}

type Plan struct {
	Name         string
	Role         string
	Title        string
	Description  string
	MonthlyCents int64
	YearlyCents  int64
	Custom       bool
	Highlighted  bool
	Limits       Limits
	Features     []string
}

func (p Plan) Free() bool { return !p.Custom && p.MonthlyCents == 0 }

var (
	managerFeatures = []string{
		constants.FeatureManagerMultiSite, constants.FeatureManagerRoom, constants.FeatureManagerPlanning,
		constants.FeatureManagerEvent, constants.FeatureManagerCoach,
	}
	managerAdvancedFeatures = append(append([]string(nil), managerFeatures...),
		constants.FeatureManagerMultiClub, constants.FeatureManagerMarketPlace,
		constants.FeatureManagerShop, constants.FeatureManagerEmployees,
	)
	coachFeatures         = []string{constants.FeatureCoachOffer, constants.FeatureCoachCertification}
	coachAdvancedFeatures = append(append([]string(nil), coachFeatures...),
		constants.FeatureCoachOfferCompany, constants.FeatureCoachMeeting, constants.FeatureCoachMarketPlace,
	)
)

func union(a, b []string) []string {
	return append(append([]string(nil), a...), b...)
}

var catalogue = []Plan{
	{
		Name: "freeMember", Role: constants.RoleMember, Title: "Membre",
		Description: "Free access to every feature of the platform for one club",
		Limits:      Limits{MaxNumberOfClubs: 1},
	},
	{
		Name: "paidMember", Role: constants.RoleMember, Title: "Membre multiclubs",
		Description:  "Access to every feature of the platform for up to 10 clubs",
		MonthlyCents: 500, YearlyCents: 5000,
		Limits: Limits{MaxNumberOfClubs: 10},
	},
	{
		Name: "freeCoach", Role: constants.RoleCoach, Title: "Essai pour Coach",
		Description: "Free but limited access for a coach who wants to try the platform",
		Limits:      Limits{MaxOffers: 1, MaxCertifications: 1},
		Features:    coachFeatures,
	},
	{
		Name: "coach", Role: constants.RoleCoach, Title: "Coach",
		Description:  "Access to every feature of the platform for a coach",
		MonthlyCents: 2000, YearlyCents: 20000, Highlighted: true,
		Limits:   Limits{MaxOffers: 10, MaxCompanyOffers: 3, MaxCertifications: 3},
		Features: coachFeatures,
	},
	{
		Name: "coachAdvanced", Role: constants.RoleCoach, Title: "Coach avancé",
		Description:  "Access to every extended feature of the platform for a coach",
		MonthlyCents: 5000, YearlyCents: 50000,
		Limits:   Limits{MaxOffers: 50, MaxCompanyOffers: 50, MaxCertifications: 10, MaxMeetings: 100},
		Features: coachAdvancedFeatures,
	},
	{
		Name: "coachCustom", Role: constants.RoleCoach, Title: "Coach sur mesure",
		Description: "Tailored access for a coach", Custom: true,
	},
	{
		Name: "freeManager", Role: constants.RoleManager, Title: "Essai pour manager",
		Description: "Free but limited access for a manager who wants to try the platform",
		Limits:      Limits{MaxClubs: 1, MaxSites: 1, MaxRooms: 1},
	},
	{
		Name: "manager", Role: constants.RoleManager, Title: "Manager",
		Description:  "Access to every feature of the platform for a manager with one club",
		MonthlyCents: 10000, YearlyCents: 100000, Highlighted: true,
		Limits:   Limits{MaxClubs: 1, MaxSites: 3, MaxRooms: 10},
		Features: managerFeatures,
	},
	{
		Name: "managerAdvanced", Role: constants.RoleManager, Title: "Manager avancé",
		Description:  "Access to every extended feature of the platform for a manager",
		MonthlyCents: 25000, YearlyCents: 250000,
		Limits:   Limits{MaxClubs: 3, MaxSites: 5, MaxRooms: 30},
		Features: managerAdvancedFeatures,
	},
	{
		Name: "managerCustom", Role: constants.RoleManager, Title: "Manager sur mesure",
		Description: "Tailored access for a manager", Custom: true,
	},
	{
		Name: "freeManagerCoach", Role: constants.RoleManagerCoach, Title: "Essai pour manager coach",
		Description: "Free but limited access for a manager who is also a coach",
		Limits:      Limits{MaxClubs: 1, MaxSites: 1, MaxRooms: 1, MaxOffers: 1, MaxCertifications: 1},
		Features:    coachFeatures,
	},
	{
		Name: "managerCoach", Role: constants.RoleManagerCoach, Title: "Manager coach",
		Description:  "Access to every feature of the platform for a manager/coach with one club",
		MonthlyCents: 10000, YearlyCents: 100000, Highlighted: true,
		Limits:   Limits{MaxClubs: 1, MaxSites: 3, MaxRooms: 10, MaxOffers: 10, MaxCompanyOffers: 3, MaxCertifications: 3},
		Features: union(managerFeatures, coachFeatures),
	},
	{
		Name: "managerCoachAdvanced", Role: constants.RoleManagerCoach, Title: "Manager/Coach avancé",
		Description:  "Access to every extended feature of the platform for a manager/coach",
		MonthlyCents: 25000, YearlyCents: 250000,
		Limits: Limits{
			MaxClubs: 3, MaxSites: 5, MaxRooms: 30,
			MaxOffers: 50, MaxCompanyOffers: 50, MaxCertifications: 10, MaxMeetings: 100,
		},
		Features: union(managerAdvancedFeatures, coachAdvancedFeatures),
	},
	{
		Name: "managerCoachCustom", Role: constants.RoleManagerCoach, Title: "Manager/Coach sur mesure",
		Description: "Tailored access for a manager/coach", Custom: true,
	},
}

func All() []Plan { return append([]Plan(nil), catalogue...) }

func ForRole(role string) []Plan {
	var out []Plan
	for _, p := range catalogue {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

func ByName(name string) (Plan, bool) {
	for _, p := range catalogue {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// ByTitle finds the catalogue plan a stored pricing was seeded from.
func ByTitle(role, title string) (Plan, bool) {
	for _, p := range catalogue {
		if p.Role == role && p.Title == title {
			return p, true
		}
	}
	return Plan{}, false
}

// FreePlan is the plan of a user without pricing.
func FreePlan(role string) (Plan, bool) {
	for _, p := range catalogue {
		if p.Role == role && p.Free() {
			return p, true
		}
	}
	return Plan{}, false
}

func has(features []string, f string) bool {
	for _, x := range features {
		if x == f {
			return true
		}
	}
	return false
}

// LimitsFor resolves what a user may own: the plan matching their pricing (or the free
// plan of their role), capped by the features that pricing actually grants.
// Admins and custom plans are not limited.
func LimitsFor(role string, pricing *pricingModel.PricingModel) Limits {
	if role == constants.RoleAdmin {
		return Limits{
			MaxClubs: Unlimited, MaxSites: Unlimited, MaxRooms: Unlimited, MaxOffers: Unlimited,
			MaxCompanyOffers: Unlimited, MaxCertifications: Unlimited, MaxMeetings: Unlimited,
			MaxNumberOfClubs: Unlimited,
		}
	}

	var (
		plan     Plan
		ok       bool
		features []string
	)
	if pricing != nil {
		plan, ok = ByTitle(pricing.PricingRoleTarget, pricing.PricingTitle)
		features = pricing.FeatureNames()
	}
	if !ok {
		plan, ok = FreePlan(role)
		if pricing == nil {
			features = plan.Features
		}
	}
	if plan.Custom {
		return LimitsFor(constants.RoleAdmin, nil)
	}

	l := plan.Limits
	if l.MaxNumberOfClubs == 0 {
		l.MaxNumberOfClubs = 1
	}
	if !has(features, constants.FeatureManagerMultiClub) && l.MaxClubs > 1 {
		l.MaxClubs = 1
	}
	if !has(features, constants.FeatureManagerMultiSite) && l.MaxSites > 1 {
		l.MaxSites = 1
	}
	if !has(features, constants.FeatureManagerRoom) {
		l.MaxRooms = 0
	}
	if !has(features, constants.FeatureCoachOfferCompany) {
		l.MaxCompanyOffers = 0
	}
	if !has(features, constants.FeatureCoachMeeting) {
		l.MaxMeetings = 0
	}
	return l
}

// Allows reports whether one more item fits under max.
func Allows(max int, current int64) bool {
	return max == Unlimited || current < int64(max)
}

// Seed creates the catalogue pricings that do not exist yet (same role and title).
func Seed(ctx context.Context, db *gorm.DB) error {
	created := 0
	for _, p := range catalogue {
		var count int64
		if err := db.WithContext(ctx).Model(&pricingModel.PricingModel{}).
			Where("pricing_role_target = ? AND pricing_title = ?", p.Role, p.Title).
			Count(&count).Error; err != nil {
			return fmt.Errorf("seed pricing %s: %w", p.Name, err)
		}
		if count > 0 {
			continue
		}
		row := ToPricing(p)
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("seed pricing %s: %w", p.Name, err)
		}
		created++
	}
	log.Printf("[SEED] %d pricings created", created)
	return nil
}

// ToPricing builds the pricing row of a plan; prices are stored in currency units.
func ToPricing(p Plan) pricingModel.PricingModel {
	row := pricingModel.PricingModel{
		PricingRoleTarget:  p.Role,
		PricingTitle:       p.Title,
		PricingDescription: p.Description,
		PricingFree:        p.Free(),
		PricingHighlighted: p.Highlighted,
		PricingMonthly:     float64(p.MonthlyCents) / 100,
		PricingYearly:      float64(p.YearlyCents) / 100,
	}
	for _, f := range p.Features {
		row.Features = append(row.Features, pricingModel.PricingFeatureModel{PricingFeatureFeature: f})
	}
	return row
}
