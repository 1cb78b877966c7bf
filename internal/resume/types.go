// Package resume provides the editable resume document model: typed content,
// add/remove of repeatable sections, hydration from extraction results, and
// field-level validation.
package resume

import (
	"time"

	"github.com/google/uuid"
)

// PersonalDetails is the header/contact block of a resume.
type PersonalDetails struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Linkedin    string `json:"linkedin" validate:"omitempty,url"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// Experience is one work-history entry. A nil EndDate means "present".
type Experience struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	Company     string `json:"company"`
	StartDate   *Date  `json:"startDate" validate:"required"`
	EndDate     *Date  `json:"endDate"`
	Description string `json:"description"`
}

// Education is one education entry; graduation is a single point in time.
type Education struct {
	Institution    string `json:"institution" validate:"required"`
	Degree         string `json:"degree"`
	GraduationDate *Date  `json:"graduationDate"`
}

// Project is one project entry with an optional link.
type Project struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

// Content is the editable body of a resume: everything the templates render
// and the store persists as the document payload.
type Content struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Summary         string          `json:"summary"`
	Experience      []Experience    `json:"experience" validate:"dive"`
	Education       []Education     `json:"education" validate:"dive"`
	Projects        []Project       `json:"projects" validate:"dive"`
	Skills          string          `json:"skills"`
}

// Document is one user's resume. Repeatable lists preserve insertion order
// as display order. Timestamps are server-assigned by the store.
type Document struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"-"`
	Title      string    `json:"title" validate:"required"`
	TemplateID string    `json:"templateId"`
	ThemeID    string    `json:"themeId"`
	Content
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ExtractedResume is the wire shape of a resume extraction or generation
// result: dates are strings, the details block may be null.
type ExtractedResume struct {
	PersonalDetails *ExtractedPersonalDetails `json:"personalDetails"`
	Summary         string                    `json:"summary"`
	Experience      []ExtractedExperience     `json:"experience"`
	Education       []ExtractedEducation      `json:"education"`
	Projects        []ExtractedProject        `json:"projects"`
	Skills          string                    `json:"skills"`
}

// ExtractedPersonalDetails mirrors PersonalDetails on the extraction wire.
// PhotoURL is never model-produced; generation attaches it pass-through.
type ExtractedPersonalDetails struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Linkedin    string `json:"linkedin"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// ExtractedExperience carries string dates; "Present" is a valid end date.
type ExtractedExperience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// ExtractedEducation carries a string graduation date.
type ExtractedEducation struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationDate string `json:"graduationDate"`
}

// ExtractedProject mirrors Project on the extraction wire.
type ExtractedProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
