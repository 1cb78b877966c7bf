package render

import (
	"html/template"
	"strings"

	"github.com/resumeforge/resumeforge/internal/resume"
)

// resumeView is the data passed to resume templates. Sections left empty in
// the document stay empty here so templates can skip their headings.
type resumeView struct {
	Accent     string
	Name       string
	PhotoURL   template.URL
	Email      string
	Phone      string
	Address    string
	Linkedin   string
	Summary    string
	Experience []experienceView
	Education  []educationView
	Projects   []projectView
	Skills     []string
}

type experienceView struct {
	JobTitle    string
	Company     string
	Dates       string
	Description string
}

type educationView struct {
	Degree      string
	Institution string
	Dates       string
}

type projectView struct {
	Name        string
	URL         string
	Description string
}

const dateDisplayLayout = "Jan 2006"

// formatDateRange renders a start/end pair for display. A nil end date
// means the engagement is ongoing.
func formatDateRange(start, end *resume.Date) string {
	if start == nil && end == nil {
		return ""
	}
	from := ""
	if start != nil {
		from = start.Format(dateDisplayLayout)
	}
	if end == nil {
		return from + " - Present"
	}
	to := end.Format(dateDisplayLayout)
	if from == "" {
		return to
	}
	return from + " - " + to
}

func formatDate(d *resume.Date) string {
	if d == nil {
		return ""
	}
	return d.Format(dateDisplayLayout)
}

// buildResumeView projects a document into template data. The document is
// read only; rendering never mutates it.
func buildResumeView(doc *resume.Document, theme Theme) resumeView {
	v := resumeView{
		Accent:  theme.Accent,
		Summary: strings.TrimSpace(doc.Summary),
		Skills:  doc.SkillList(),
	}
	pd := doc.PersonalDetails
	v.Name = pd.FullName
	// Photos arrive as data URIs, which the template engine would otherwise
	// refuse in a src attribute.
	v.PhotoURL = template.URL(pd.PhotoURL)
	v.Email = pd.Email
	v.Phone = pd.PhoneNumber
	v.Address = pd.Address
	v.Linkedin = pd.Linkedin
	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, experienceView{
			JobTitle:    e.JobTitle,
			Company:     e.Company,
			Dates:       formatDateRange(e.StartDate, e.EndDate),
			Description: e.Description,
		})
	}
	for _, e := range doc.Education {
		v.Education = append(v.Education, educationView{
			Degree:      e.Degree,
			Institution: e.Institution,
			Dates:       formatDate(e.GraduationDate),
		})
	}
	for _, p := range doc.Projects {
		v.Projects = append(v.Projects, projectView{
			Name:        p.Name,
			URL:         p.URL,
			Description: p.Description,
		})
	}
	return v
}
