package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/resumeforge/internal/resume"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateIDs lists the built-in resume templates in display order. The
// registry is closed; there is no user-defined template mechanism.
var TemplateIDs = []string{
	"modern",
	"classic",
	"creative",
	"minimalist",
	"professional",
	"elegant",
	"technical",
	"executive",
	"compact",
	"timeline",
}

var templateNames = map[string]string{
	"modern":       "Modern",
	"classic":      "Classic",
	"creative":     "Creative",
	"minimalist":   "Minimalist",
	"professional": "Professional",
	"elegant":      "Elegant",
	"technical":    "Technical",
	"executive":    "Executive",
	"compact":      "Compact",
	"timeline":     "Timeline",
}

// Template renders a resume document into a self-contained HTML page.
type Template interface {
	ID() string
	Name() string
	Render(doc *resume.Document, themeID string) ([]byte, error)
}

type htmlTemplate struct {
	id   string
	name string
	tmpl *template.Template
}

func (t *htmlTemplate) ID() string   { return t.id }
func (t *htmlTemplate) Name() string { return t.name }

func (t *htmlTemplate) Render(doc *resume.Document, themeID string) ([]byte, error) {
	view := buildResumeView(doc, ThemeByID(themeID))
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, view); err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to execute template %q", t.id), Cause: err}
	}
	return buf.Bytes(), nil
}

var (
	registryOnce sync.Once
	registry     map[string]Template
	registryErr  error
)

func loadRegistry() (map[string]Template, error) {
	registryOnce.Do(func() {
		reg := make(map[string]Template, len(TemplateIDs))
		for _, id := range TemplateIDs {
			path := "templates/" + id + ".tmpl"
			content, err := templateFS.ReadFile(path)
			if err != nil {
				registryErr = &TemplateError{Message: fmt.Sprintf("missing built-in template %q", id), Cause: err}
				return
			}
			tmpl, err := template.New(id).Parse(string(content))
			if err != nil {
				registryErr = &TemplateError{Message: fmt.Sprintf("failed to parse template %q", id), Cause: err}
				return
			}
			reg[id] = &htmlTemplate{id: id, name: templateNames[id], tmpl: tmpl}
		}
		registry = reg
	})
	return registry, registryErr
}

// Get returns the template with the given ID. Unknown IDs are an error so
// callers can reject them before persisting a document.
func Get(id string) (Template, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	t, ok := reg[id]
	if !ok {
		return nil, &RenderError{Message: fmt.Sprintf("unknown template %q", id)}
	}
	return t, nil
}

// List returns all built-in templates in display order.
func List() ([]Template, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	out := make([]Template, 0, len(TemplateIDs))
	for _, id := range TemplateIDs {
		out = append(out, reg[id])
	}
	return out, nil
}

// Resume renders a document with its own template and theme selections.
func Resume(doc *resume.Document) ([]byte, error) {
	t, err := Get(doc.TemplateID)
	if err != nil {
		return nil, err
	}
	return t.Render(doc, doc.ThemeID)
}

// All renders one document through every built-in template concurrently,
// for gallery previews. The result maps template ID to rendered HTML.
func All(doc *resume.Document) (map[string][]byte, error) {
	tmpls, err := List()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(tmpls))
	var mu sync.Mutex
	var g errgroup.Group
	for _, t := range tmpls {
		g.Go(func() error {
			html, err := t.Render(doc, doc.ThemeID)
			if err != nil {
				return err
			}
			mu.Lock()
			out[t.ID()] = html
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
