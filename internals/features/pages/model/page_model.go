package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Page targets
const (
	TargetHome       = "HOME"
	TargetActivities = "ACTIVITIES"
	TargetOffers     = "OFFERS"
	TargetTeam       = "TEAM"
	TargetPlanning   = "PLANNING"
	TargetVideos     = "VIDEOS"
	TargetEvents     = "EVENTS"
)

// Section models
const (
	SectionHero           = "HERO"
	SectionTitle          = "TITLE"
	SectionPlannings      = "PLANNINGS"
	SectionActivityGroups = "ACTIVITY_GROUPS"
	SectionActivities     = "ACTIVITIES"
	SectionOffers         = "OFFERS"
	SectionVideo          = "VIDEO"
	SectionLocation       = "LOCATION"
	SectionContact        = "CONTACT"
	SectionSocial         = "SOCIAL"
	SectionTeammates      = "TEAMMATES"
	SectionFooter         = "FOOTER"
)

var Targets = []string{TargetHome, TargetActivities, TargetOffers, TargetTeam, TargetPlanning, TargetVideos, TargetEvents}

var Sections = []string{
	SectionHero, SectionTitle, SectionPlannings, SectionActivityGroups, SectionActivities, SectionOffers,
	SectionVideo, SectionLocation, SectionContact, SectionSocial, SectionTeammates, SectionFooter,
}

var defaultSections = map[string][]string{
	TargetHome:       {SectionHero, SectionActivityGroups, SectionActivities, SectionContact, SectionLocation},
	TargetOffers:     {SectionTitle, SectionOffers},
	TargetActivities: {SectionTitle, SectionActivityGroups, SectionActivities},
	TargetPlanning:   {SectionTitle, SectionPlannings},
	TargetTeam:       {SectionTitle, SectionTeammates},
}

// DefaultSections returns the sections a new page of target starts with.
func DefaultSections(target string) []string {
	return append([]string(nil), defaultSections[target]...)
}

func IsValidTarget(t string) bool  { return contains(Targets, t) }
func IsValidSection(s string) bool { return contains(Sections, s) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type PageModel struct {
	PageID        uuid.UUID `gorm:"column:page_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"page_id"`
	PageClubID    uuid.UUID `gorm:"column:page_club_id;type:uuid;not null;index" json:"page_club_id"`
	PageName      string    `gorm:"column:page_name;type:text;not null" json:"page_name"`
	PageTarget    string    `gorm:"column:page_target;type:varchar(12);not null;default:'HOME'" json:"page_target"`
	PagePublished bool      `gorm:"column:page_published;not null;default:false" json:"page_published"`

	Sections []PageSectionModel `gorm:"foreignKey:PageSectionPageID;references:PageID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`

	PageCreatedAt time.Time `gorm:"column:page_created_at;autoCreateTime" json:"page_created_at"`
	PageUpdatedAt time.Time `gorm:"column:page_updated_at;autoUpdateTime" json:"page_updated_at"`
}

func (PageModel) TableName() string { return "pages" }

type PageSectionModel struct {
	PageSectionID       uuid.UUID      `gorm:"column:page_section_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"page_section_id"`
	PageSectionPageID   uuid.UUID      `gorm:"column:page_section_page_id;type:uuid;not null;index" json:"-"`
	PageSectionModel    string         `gorm:"column:page_section_model;type:varchar(20);not null" json:"page_section_model"`
	PageSectionTitle    string         `gorm:"column:page_section_title;type:text;not null;default:''" json:"page_section_title"`
	PageSectionSubtitle string         `gorm:"column:page_section_subtitle;type:text;not null;default:''" json:"page_section_subtitle"`
	PageSectionContent  datatypes.JSON `gorm:"column:page_section_content;type:jsonb;not null;default:'{}'" json:"page_section_content"`
	PageSectionWeight   int            `gorm:"column:page_section_weight;not null;default:0" json:"page_section_weight"`
}

func (PageSectionModel) TableName() string { return "page_sections" }
