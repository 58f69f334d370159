package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section payload schemas. Incoming section updates are validated against
// these before they replace the in-memory section, so a presentation
// collaborator can never push a structurally invalid section into the core.
const (
	personalInfoSchema = `{
		"type": "object",
		"properties": {
			"full_name": {"type": "string"},
			"email":     {"type": "string"},
			"phone":     {"type": "string"},
			"location":  {"type": "string"},
			"summary":   {"type": "string"},
			"linkedin":  {"type": "string"},
			"website":   {"type": "string"}
		},
		"additionalProperties": false
	}`

	experienceSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id":          {"type": "string"},
				"company":     {"type": "string"},
				"role":        {"type": "string"},
				"start_date":  {"type": "string"},
				"end_date":    {"type": "string"},
				"description": {"type": "string"}
			},
			"required": ["company"],
			"additionalProperties": false
		}
	}`

	educationSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id":         {"type": "string"},
				"school":     {"type": "string"},
				"degree":     {"type": "string"},
				"field":      {"type": "string"},
				"start_date": {"type": "string"},
				"end_date":   {"type": "string"}
			},
			"required": ["school"],
			"additionalProperties": false
		}
	}`

	skillsSchema = `{
		"type": "object",
		"properties": {
			"technical": {"$ref": "#/definitions/skillList"},
			"soft":      {"$ref": "#/definitions/skillList"},
			"languages": {"$ref": "#/definitions/skillList"}
		},
		"additionalProperties": false,
		"definitions": {
			"skillList": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"name":  {"type": "string", "minLength": 1},
						"level": {"type": "integer", "minimum": 1, "maximum": 5}
					},
					"required": ["name", "level"],
					"additionalProperties": false
				}
			}
		}
	}`

	projectsSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id":          {"type": "string"},
				"name":        {"type": "string"},
				"description": {"type": "string"},
				"url":         {"type": "string"}
			},
			"required": ["name"],
			"additionalProperties": false
		}
	}`

	certificationsSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id":     {"type": "string"},
				"name":   {"type": "string"},
				"issuer": {"type": "string"},
				"date":   {"type": "string"}
			},
			"required": ["name"],
			"additionalProperties": false
		}
	}`
)

var sectionSchemas = map[types.SectionName]string{
	types.SectionPersonalInfo:   personalInfoSchema,
	types.SectionExperience:     experienceSchema,
	types.SectionEducation:      educationSchema,
	types.SectionSkills:         skillsSchema,
	types.SectionProjects:       projectsSchema,
	types.SectionCertifications: certificationsSchema,
}

// ValidationError reports why a section payload was rejected.
type ValidationError struct {
	Section types.SectionName
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Section, strings.Join(e.Reasons, "; "))
}

// ValidateSection validates a raw section payload against that section's
// schema. Skill levels from incoming updates must already be 1..5; the
// legacy bare-string migration applies only to persisted data, never to
// live edits.
func ValidateSection(section types.SectionName, payload []byte) error {
	schemaSrc, ok := sectionSchemas[section]
	if !ok {
		return fmt.Errorf("unknown section: %s", section)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaSrc),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return &ValidationError{Section: section, Reasons: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		reasons = append(reasons, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return &ValidationError{Section: section, Reasons: reasons}
}
