package dto

import (
	"strings"

	"videoach_backend/internals/features/pages/model"

	"gorm.io/datatypes"
)

type PageRequest struct {
	Name      string `json:"page_name" validate:"required,min=1,max=120"`
	Target    string `json:"page_target" validate:"required,oneof=HOME ACTIVITIES OFFERS TEAM PLANNING VIDEOS EVENTS"`
	Published bool   `json:"page_published"`
}

type SectionRequest struct {
	Model    string         `json:"page_section_model" validate:"required"`
	Title    string         `json:"page_section_title" validate:"max=200"`
	Subtitle string         `json:"page_section_subtitle" validate:"max=300"`
	Content  datatypes.JSON `json:"page_section_content"`
}

type UpdateSectionsRequest struct {
	Sections []SectionRequest `json:"sections" validate:"dive"`
}

// ToModels keeps the request order as the section weight.
func (r UpdateSectionsRequest) ToModels() ([]model.PageSectionModel, bool) {
	out := make([]model.PageSectionModel, 0, len(r.Sections))
	for i, s := range r.Sections {
		m := strings.ToUpper(strings.TrimSpace(s.Model))
		if !model.IsValidSection(m) {
			return nil, false
		}
		content := s.Content
		if len(content) == 0 {
			content = datatypes.JSON("{}")
		}
		out = append(out, model.PageSectionModel{
			PageSectionModel:    m,
			PageSectionTitle:    s.Title,
			PageSectionSubtitle: s.Subtitle,
			PageSectionContent:  content,
			PageSectionWeight:   i,
		})
	}
	return out, true
}

// DefaultSectionModels is the starting content of a new page of target.
func DefaultSectionModels(target string) []model.PageSectionModel {
	names := model.DefaultSections(target)
	out := make([]model.PageSectionModel, 0, len(names))
	for i, n := range names {
		out = append(out, model.PageSectionModel{
			PageSectionModel:   n,
			PageSectionContent: datatypes.JSON("{}"),
			PageSectionWeight:  i,
		})
	}
	return out
}
