package types

// Template identifies one of the fixed visual templates a document can be
// rendered under. Selection is persisted alongside the document in the same
// identity scope but is otherwise independent of it.
type Template string

// The fixed template set.
const (
	TemplateProfessional Template = "professional"
	TemplateModern       Template = "modern"
	TemplateCreative     Template = "creative"
)

// DefaultTemplate is used when a scope has no persisted selection.
const DefaultTemplate = TemplateProfessional

// ValidTemplate reports whether t is a member of the fixed template set.
func ValidTemplate(t Template) bool {
	switch t {
	case TemplateProfessional, TemplateModern, TemplateCreative:
		return true
	}
	return false
}
