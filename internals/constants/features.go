package constants

// Features granted by a pricing plan.
const (
	FeatureCoachCertification  = "COACH_CERTIFICATION"
	FeatureCoachOffer          = "COACH_OFFER"
	FeatureCoachOfferCompany   = "COACH_OFFER_COMPANY"
	FeatureCoachMeeting        = "COACH_MEETING"
	FeatureCoachMarketPlace    = "COACH_MARKET_PLACE"
	FeatureManagerMultiClub    = "MANAGER_MULTI_CLUB"
	FeatureManagerMultiSite    = "MANAGER_MULTI_SITE"
	FeatureManagerCoach        = "MANAGER_COACH"
	FeatureManagerEvent        = "MANAGER_EVENT"
	FeatureManagerPlanning     = "MANAGER_PLANNING"
	FeatureManagerRoom         = "MANAGER_ROOM"
	FeatureManagerMarketPlace  = "MANAGER_MARKET_PLACE"
	FeatureManagerShop         = "MANAGER_SHOP"
	FeatureManagerEmployees    = "MANAGER_EMPLOYEES"
)

var coachRoles = []string{RoleCoach, RoleManagerCoach}
var managerRoles = []string{RoleManager, RoleManagerCoach}

// FeatureRoles lists, per feature, the roles a pricing may grant it to.
var FeatureRoles = map[string][]string{
	FeatureCoachCertification: coachRoles,
	FeatureCoachOffer:         coachRoles,
	FeatureCoachOfferCompany:  coachRoles,
	FeatureCoachMeeting:       coachRoles,
	FeatureCoachMarketPlace:   coachRoles,
	FeatureManagerMultiClub:   managerRoles,
	FeatureManagerMultiSite:   managerRoles,
	FeatureManagerCoach:       managerRoles,
	FeatureManagerEvent:       managerRoles,
	FeatureManagerPlanning:    managerRoles,
	FeatureManagerRoom:        managerRoles,
	FeatureManagerMarketPlace: managerRoles,
	FeatureManagerShop:        managerRoles,
	FeatureManagerEmployees:   managerRoles,
}

func IsValidFeature(f string) bool {
	_, ok := FeatureRoles[f]
	return ok
}

// FeaturesForRole returns the features a pricing targeting role may carry.
func FeaturesForRole(role string) []string {
	var out []string
	for _, f := range orderedFeatures {
		for _, r := range FeatureRoles[f] {
			if r == role {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

var orderedFeatures = []string{
	FeatureCoachCertification,
	FeatureCoachOffer,
	FeatureCoachOfferCompany,
	FeatureCoachMeeting,
	FeatureCoachMarketPlace,
	FeatureManagerMultiClub,
	FeatureManagerMultiSite,
	FeatureManagerCoach,
	FeatureManagerEvent,
	FeatureManagerPlanning,
	FeatureManagerRoom,
	FeatureManagerMarketPlace,
	FeatureManagerShop,
	FeatureManagerEmployees,
}
