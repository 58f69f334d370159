// Package schema normalizes persisted document payloads into the current
// Document shape. Migration runs once at the deserialization boundary; code
// past this package always sees the current schema.
package schema

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/types"
)

// legacySkillLevel is assigned to skills persisted in the old bare-string
// format, which carried no proficiency information.
const legacySkillLevel = 3

// rawDocument mirrors types.Document but defers skill decoding so the legacy
// bare-string shape can be detected per category.
type rawDocument struct {
	PersonalInfo   types.PersonalInfo         `json:"personal_info"`
	Experience     []types.ExperienceEntry    `json:"experience"`
	Education      []types.EducationEntry     `json:"education"`
	Skills         rawSkillGroups             `json:"skills"`
	Projects       []types.ProjectEntry       `json:"projects"`
	Certifications []types.CertificationEntry `json:"certifications"`
}

type rawSkillGroups struct {
	Technical json.RawMessage `json:"technical"`
	Soft      json.RawMessage `json:"soft"`
	Languages json.RawMessage `json:"languages"`
}

// Migrate parses a persisted document payload and normalizes it to the
// current schema. A nil, empty, or unparseable payload yields the all-empty
// default document: malformed persisted state must never block the user.
func Migrate(raw []byte) *types.Document {
	if len(raw) == 0 {
		return types.NewDocument()
	}

	var rd rawDocument
	if err := json.Unmarshal(raw, &rd); err != nil {
		log.Printf("[schema] discarding malformed document payload: %v", err)
		return types.NewDocument()
	}

	doc := &types.Document{
		PersonalInfo:   rd.PersonalInfo,
		Experience:     rd.Experience,
		Education:      rd.Education,
		Projects:       rd.Projects,
		Certifications: rd.Certifications,
	}

	var err error
	if doc.Skills.Technical, err = migrateSkillCategory(rd.Skills.Technical); err != nil {
		log.Printf("[schema] discarding malformed technical skills: %v", err)
		doc.Skills.Technical = []types.SkillItem{}
	}
	if doc.Skills.Soft, err = migrateSkillCategory(rd.Skills.Soft); err != nil {
		log.Printf("[schema] discarding malformed soft skills: %v", err)
		doc.Skills.Soft = []types.SkillItem{}
	}
	if doc.Skills.Languages, err = migrateSkillCategory(rd.Skills.Languages); err != nil {
		log.Printf("[schema] discarding malformed language skills: %v", err)
		doc.Skills.Languages = []types.SkillItem{}
	}

	ensureSlices(doc)
	return doc
}

// MigrateDocument re-normalizes an in-memory document. Exists so callers that
// already hold a decoded document (the CLI export path) share one code path
// with the byte-level boundary.
func MigrateDocument(doc *types.Document) *types.Document {
	if doc == nil {
		return types.NewDocument()
	}
	out := doc.Clone()
	ensureSlices(out)
	return out
}

// migrateSkillCategory decodes one skill category, upgrading the legacy
// bare-string shape ["SQL","Go"] to [{name,level:3},...]. The shape probe
// looks at the first element only: persisted categories are homogeneous, a
// category never mixes the two formats.
func migrateSkillCategory(raw json.RawMessage) ([]types.SkillItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []types.SkillItem{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("skill category is not an array: %w", err)
	}
	if len(elems) == 0 {
		return []types.SkillItem{}, nil
	}

	var probe string
	if err := json.Unmarshal(elems[0], &probe); err == nil {
		// Legacy format: bare names, no level recorded.
		items := make([]types.SkillItem, 0, len(elems))
		for _, e := range elems {
			var name string
			if err := json.Unmarshal(e, &name); err != nil {
				return nil, fmt.Errorf("mixed legacy skill category: %w", err)
			}
			items = append(items, types.SkillItem{Name: name, Level: legacySkillLevel})
		}
		return items, nil
	}

	items := make([]types.SkillItem, 0, len(elems))
	for _, e := range elems {
		var item types.SkillItem
		if err := json.Unmarshal(e, &item); err != nil {
			return nil, fmt.Errorf("invalid skill item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ensureSlices replaces nil sections with empty slices so the document
// serializes as [] rather than null and IsEmpty checks stay uniform.
func ensureSlices(doc *types.Document) {
	if doc.Experience == nil {
		doc.Experience = []types.ExperienceEntry{}
	}
	if doc.Education == nil {
		doc.Education = []types.EducationEntry{}
	}
	if doc.Projects == nil {
		doc.Projects = []types.ProjectEntry{}
	}
	if doc.Certifications == nil {
		doc.Certifications = []types.CertificationEntry{}
	}
	if doc.Skills.Technical == nil {
		doc.Skills.Technical = []types.SkillItem{}
	}
	if doc.Skills.Soft == nil {
		doc.Skills.Soft = []types.SkillItem{}
	}
	if doc.Skills.Languages == nil {
		doc.Skills.Languages = []types.SkillItem{}
	}
}
