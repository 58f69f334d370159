// Package document owns the authoritative in-memory document and template
// selection for the active scope, persisting on every mutation.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/completeness"
	"github.com/jonathan/resume-builder/internal/schema"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// Controller holds the working document and template for one scope at a
// time. All mutations are synchronous: the section is replaced, completeness
// recomputed, and the full document persisted before the call returns.
type Controller struct {
	store  store.Store
	scope  store.Scope
	doc    *types.Document
	tmpl   types.Template
	report completeness.Report
}

// NewController creates a controller holding the empty default document in
// guest scope. Call Load to adopt a scope's persisted state.
func NewController(s store.Store) *Controller {
	c := &Controller{
		store: s,
		scope: store.ScopeGuest,
		doc:   types.NewDocument(),
		tmpl:  types.DefaultTemplate,
	}
	c.report = completeness.Evaluate(c.doc)
	return c
}

// Load replaces the in-memory document and template with the given scope's
// persisted state. Malformed or absent state degrades to defaults; a store
// read failure is returned but still leaves usable defaults in memory, so
// the user is never blocked.
func (c *Controller) Load(ctx context.Context, scope store.Scope) error {
	c.scope = scope
	c.doc = types.NewDocument()
	c.tmpl = types.DefaultTemplate

	docRaw, err := c.store.Load(ctx, scope, store.KindDocument)
	if err != nil {
		c.report = completeness.Evaluate(c.doc)
		return fmt.Errorf("failed to load document for %s scope: %w", scope, err)
	}
	c.doc = schema.Migrate(docRaw)

	tmplRaw, err := c.store.Load(ctx, scope, store.KindTemplate)
	if err != nil {
		c.report = completeness.Evaluate(c.doc)
		return fmt.Errorf("failed to load template for %s scope: %w", scope, err)
	}
	if tmplRaw != nil {
		if t := types.Template(tmplRaw); types.ValidTemplate(t) {
			c.tmpl = t
		} else {
			log.Printf("[document] discarding unknown persisted template %q", tmplRaw)
		}
	}

	c.report = completeness.Evaluate(c.doc)
	return nil
}

// Scope returns the scope the controller currently serves.
func (c *Controller) Scope() store.Scope {
	return c.scope
}

// Document returns a snapshot of the working document. Collaborators render
// from the snapshot; they never hold the working copy itself.
func (c *Controller) Document() *types.Document {
	return c.doc.Clone()
}

// Template returns the selected template.
func (c *Controller) Template() types.Template {
	return c.tmpl
}

// Completeness returns the report computed at the last mutation.
func (c *Controller) Completeness() completeness.Report {
	return c.report
}

// UpdateSection replaces exactly one top-level section with the decoded
// payload, leaving every other section untouched. The payload is validated
// against the section schema first; list entries without an ID are assigned
// one. The full document is persisted before the call returns.
func (c *Controller) UpdateSection(ctx context.Context, section types.SectionName, payload []byte) error {
	if !types.ValidSection(section) {
		return fmt.Errorf("unknown section: %s", section)
	}
	if err := schema.ValidateSection(section, payload); err != nil {
		return err
	}

	next := c.doc.Clone()
	switch section {
	case types.SectionPersonalInfo:
		var v types.PersonalInfo
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		next.PersonalInfo = v
	case types.SectionExperience:
		var v []types.ExperienceEntry
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		for i := range v {
			if v[i].ID == "" {
				v[i].ID = uuid.NewString()
			}
		}
		next.Experience = v
	case types.SectionEducation:
		var v []types.EducationEntry
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		for i := range v {
			if v[i].ID == "" {
				v[i].ID = uuid.NewString()
			}
		}
		next.Education = v
	case types.SectionSkills:
		var v types.SkillGroups
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		next.Skills = v
	case types.SectionProjects:
		var v []types.ProjectEntry
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		for i := range v {
			if v[i].ID == "" {
				v[i].ID = uuid.NewString()
			}
		}
		next.Projects = v
	case types.SectionCertifications:
		var v []types.CertificationEntry
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", section, err)
		}
		for i := range v {
			if v[i].ID == "" {
				v[i].ID = uuid.NewString()
			}
		}
		next.Certifications = v
	}
	schemaEnsure(next)

	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.doc = next
	c.report = completeness.Evaluate(c.doc)
	return nil
}

// SetTemplate replaces the selected template and persists it.
func (c *Controller) SetTemplate(ctx context.Context, tmpl types.Template) error {
	if !types.ValidTemplate(tmpl) {
		return fmt.Errorf("unknown template: %s", tmpl)
	}
	if err := c.store.Save(ctx, c.scope, store.KindTemplate, []byte(tmpl)); err != nil {
		return fmt.Errorf("failed to persist template: %w", err)
	}
	c.tmpl = tmpl
	c.report = completeness.Evaluate(c.doc)
	return nil
}

func (c *Controller) persist(ctx context.Context, doc *types.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := c.store.Save(ctx, c.scope, store.KindDocument, raw); err != nil {
		return fmt.Errorf("failed to persist document: %w", err)
	}
	return nil
}

// schemaEnsure normalizes nil slices after a section replacement so the
// document keeps a uniform serialized shape.
func schemaEnsure(doc *types.Document) {
	normalized := schema.MigrateDocument(doc)
	*doc = *normalized
}
