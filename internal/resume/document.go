package resume

import (
	"fmt"
	"strings"
)

// NewDocument returns an empty document with a default title and layout.
func NewDocument(title string) *Document {
	if title == "" {
		title = "Untitled Resume"
	}
	doc := &Document{
		Title:      title,
		TemplateID: "modern",
		ThemeID:    "default",
	}
	doc.Normalize()
	return doc
}

// AddExperience appends a zero-valued entry at the end of the list. The
// entry is not validated until the user edits it.
func (d *Document) AddExperience() {
	d.Experience = append(d.Experience, Experience{})
}

// AddEducation appends a zero-valued education entry.
func (d *Document) AddEducation() {
	d.Education = append(d.Education, Education{})
}

// AddProject appends a zero-valued project entry.
func (d *Document) AddProject() {
	d.Projects = append(d.Projects, Project{})
}

// RemoveExperience deletes the entry at position i, preserving the order of
// the remaining entries.
func (d *Document) RemoveExperience(i int) error {
	if i < 0 || i >= len(d.Experience) {
		return fmt.Errorf("experience index out of range: %d", i)
	}
	d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
	return nil
}

// RemoveEducation deletes the education entry at position i.
func (d *Document) RemoveEducation(i int) error {
	if i < 0 || i >= len(d.Education) {
		return fmt.Errorf("education index out of range: %d", i)
	}
	d.Education = append(d.Education[:i], d.Education[i+1:]...)
	return nil
}

// RemoveProject deletes the project entry at position i.
func (d *Document) RemoveProject(i int) error {
	if i < 0 || i >= len(d.Projects) {
		return fmt.Errorf("project index out of range: %d", i)
	}
	d.Projects = append(d.Projects[:i], d.Projects[i+1:]...)
	return nil
}

// SkillList splits the comma-delimited skills string into trimmed entries.
func (d *Document) SkillList() []string {
	if strings.TrimSpace(d.Skills) == "" {
		return nil
	}
	parts := strings.Split(d.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Normalize replaces nil repeatable sections with empty ones so the encoded
// document always carries explicit empty values, never absent fields. The
// store requires this before any full-document write.
func (d *Document) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
}

// FromExtraction hydrates a new document from an extraction result. Date
// strings are parsed; the literal token "present" maps to an absent end
// date. Unparseable dates degrade to absent rather than failing the whole
// hydration, since the source is model output.
func FromExtraction(title string, x ExtractedResume) *Document {
	doc := NewDocument(title)

	if x.PersonalDetails != nil {
		doc.PersonalDetails = PersonalDetails{
			FullName:    x.PersonalDetails.FullName,
			Email:       x.PersonalDetails.Email,
			PhoneNumber: x.PersonalDetails.PhoneNumber,
			Address:     x.PersonalDetails.Address,
			Linkedin:    x.PersonalDetails.Linkedin,
			PhotoURL:    x.PersonalDetails.PhotoURL,
		}
	}
	doc.Summary = x.Summary
	doc.Skills = x.Skills

	for _, e := range x.Experience {
		start, _ := ParseDate(e.StartDate)
		end, _ := ParseDate(e.EndDate)
		doc.Experience = append(doc.Experience, Experience{
			JobTitle:    e.JobTitle,
			Company:     e.Company,
			StartDate:   start,
			EndDate:     end,
			Description: e.Description,
		})
	}
	for _, e := range x.Education {
		grad, _ := ParseDate(e.GraduationDate)
		doc.Education = append(doc.Education, Education{
			Institution:    e.Institution,
			Degree:         e.Degree,
			GraduationDate: grad,
		})
	}
	for _, p := range x.Projects {
		doc.Projects = append(doc.Projects, Project{
			Name:        p.Name,
			Description: p.Description,
			URL:         p.URL,
		})
	}

	return doc
}
