// Package export renders a completed document into a downloadable plain-text
// artifact. Export is gated on completeness, re-evaluated at call time.
package export

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/completeness"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNotReady indicates the document does not yet meet the completeness
// criteria; the report says which sections are missing.
type ErrNotReady struct {
	Report completeness.Report
}

func (e *ErrNotReady) Error() string {
	missing := []string{}
	if !e.Report.PersonalInfo {
		missing = append(missing, "personal info")
	}
	if !e.Report.Experience && !e.Report.Education {
		missing = append(missing, "experience or education")
	}
	if !e.Report.Skills {
		missing = append(missing, "skills")
	}
	return fmt.Sprintf("document is not ready for export: missing %s", strings.Join(missing, ", "))
}

// style captures how a visual template decorates the text artifact.
type style struct {
	rule       string
	bullet     string
	upperHeads bool
}

var styles = map[types.Template]style{
	types.TemplateProfessional: {rule: "=", bullet: "-", upperHeads: true},
	types.TemplateModern:       {rule: "-", bullet: "*", upperHeads: false},
	types.TemplateCreative:     {rule: "~", bullet: ">", upperHeads: false},
}

const resumeTemplate = `{{.Name}}
{{.Contact}}
{{.Rule}}
{{range .Sections}}
{{.Heading}}
{{.Underline}}
{{range .Lines}}{{.}}
{{end}}{{end}}`

type renderSection struct {
	Heading   string
	Underline string
	Lines     []string
}

type renderData struct {
	Name     string
	Contact  string
	Rule     string
	Sections []renderSection
}

// Render produces the text artifact for a document under the given template.
// Returns *ErrNotReady when the completeness gate fails.
func Render(doc *types.Document, tmpl types.Template) (string, error) {
	report := completeness.Evaluate(doc)
	if !report.IsComplete {
		return "", &ErrNotReady{Report: report}
	}

	st, ok := styles[tmpl]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", tmpl)
	}

	data := buildRenderData(doc, st)

	t, err := template.New("resume").Parse(resumeTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse resume template: %w", err)
	}
	var out strings.Builder
	if err := t.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to execute resume template: %w", err)
	}
	return out.String(), nil
}

func buildRenderData(doc *types.Document, st style) renderData {
	contact := []string{doc.PersonalInfo.Email}
	if doc.PersonalInfo.Phone != "" {
		contact = append(contact, doc.PersonalInfo.Phone)
	}
	if doc.PersonalInfo.Location != "" {
		contact = append(contact, doc.PersonalInfo.Location)
	}

	data := renderData{
		Name:    doc.PersonalInfo.FullName,
		Contact: strings.Join(contact, " | "),
		Rule:    strings.Repeat(st.rule, 40),
	}

	addSection := func(heading string, lines []string) {
		if len(lines) == 0 {
			return
		}
		if st.upperHeads {
			heading = strings.ToUpper(heading)
		}
		data.Sections = append(data.Sections, renderSection{
			Heading:   heading,
			Underline: strings.Repeat(st.rule, len(heading)),
			Lines:     lines,
		})
	}

	if doc.PersonalInfo.Summary != "" {
		addSection("Summary", []string{doc.PersonalInfo.Summary})
	}

	var expLines []string
	for _, e := range doc.Experience {
		head := e.Role
		if head != "" && e.Company != "" {
			head += ", "
		}
		head += e.Company
		if e.StartDate != "" || e.EndDate != "" {
			head += fmt.Sprintf(" (%s - %s)", e.StartDate, e.EndDate)
		}
		expLines = append(expLines, st.bullet+" "+head)
		if e.Description != "" {
			expLines = append(expLines, "  "+e.Description)
		}
	}
	addSection("Experience", expLines)

	var eduLines []string
	for _, e := range doc.Education {
		head := e.Degree
		if e.Field != "" {
			head += " in " + e.Field
		}
		if head != "" {
			head += ", "
		}
		head += e.School
		if e.StartDate != "" || e.EndDate != "" {
			head += fmt.Sprintf(" (%s - %s)", e.StartDate, e.EndDate)
		}
		eduLines = append(eduLines, st.bullet+" "+head)
	}
	addSection("Education", eduLines)

	var skillLines []string
	if line := skillLine("Technical", doc.Skills.Technical); line != "" {
		skillLines = append(skillLines, line)
	}
	if line := skillLine("Soft", doc.Skills.Soft); line != "" {
		skillLines = append(skillLines, line)
	}
	if line := skillLine("Languages", doc.Skills.Languages); line != "" {
		skillLines = append(skillLines, line)
	}
	addSection("Skills", skillLines)

	var projLines []string
	for _, p := range doc.Projects {
		line := st.bullet + " " + p.Name
		if p.Description != "" {
			line += " - " + p.Description
		}
		if p.URL != "" {
			line += " (" + p.URL + ")"
		}
		projLines = append(projLines, line)
	}
	addSection("Projects", projLines)

	var certLines []string
	for _, c := range doc.Certifications {
		line := st.bullet + " " + c.Name
		if c.Issuer != "" {
			line += ", " + c.Issuer
		}
		if c.Date != "" {
			line += " (" + c.Date + ")"
		}
		certLines = append(certLines, line)
	}
	addSection("Certifications", certLines)

	return data
}

func skillLine(label string, items []types.SkillItem) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%d/5)", item.Name, item.Level))
	}
	return label + ": " + strings.Join(parts, ", ")
}
