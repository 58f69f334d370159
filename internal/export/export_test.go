package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func completeDocument() *types.Document {
	doc := types.NewDocument()
	doc.PersonalInfo = types.PersonalInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		Summary:  "Engineer and analyst.",
	}
	doc.Experience = []types.ExperienceEntry{
		{ID: "e1", Company: "Analytical Engines Ltd", Role: "Engineer", StartDate: "1842", EndDate: "1843", Description: "Wrote the first program."},
	}
	doc.Education = []types.EducationEntry{
		{ID: "s1", School: "Home Tutoring", Degree: "Mathematics"},
	}
	doc.Skills.Technical = []types.SkillItem{{Name: "Mathematics", Level: 5}}
	doc.Skills.Languages = []types.SkillItem{{Name: "French", Level: 4}}
	return doc
}

func TestRender_GatedOnCompleteness(t *testing.T) {
	doc := types.NewDocument()
	_, err := Render(doc, types.TemplateProfessional)
	require.Error(t, err)

	var notReady *ErrNotReady
	require.ErrorAs(t, err, &notReady)
	assert.False(t, notReady.Report.IsComplete)
	assert.Contains(t, err.Error(), "personal info")
}

func TestRender_CompleteDocument(t *testing.T) {
	out, err := Render(completeDocument(), types.TemplateProfessional)
	require.NoError(t, err)

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada@example.com | 555-0100")
	assert.Contains(t, out, "EXPERIENCE", "professional template uppercases headings")
	assert.Contains(t, out, "- Engineer, Analytical Engines Ltd (1842 - 1843)")
	assert.Contains(t, out, "Technical: Mathematics (5/5)")
	assert.Contains(t, out, "Languages: French (4/5)")
}

func TestRender_TemplateStyles(t *testing.T) {
	doc := completeDocument()

	modern, err := Render(doc, types.TemplateModern)
	require.NoError(t, err)
	assert.Contains(t, modern, "Experience", "modern template keeps mixed-case headings")
	assert.Contains(t, modern, "* Engineer")

	creative, err := Render(doc, types.TemplateCreative)
	require.NoError(t, err)
	assert.Contains(t, creative, "> Engineer")
	assert.Contains(t, creative, strings.Repeat("~", 40))
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(completeDocument(), types.Template("sparkly"))
	assert.Error(t, err)
}

func TestRender_SkipsEmptySections(t *testing.T) {
	doc := completeDocument()
	doc.Projects = nil
	doc.Certifications = nil

	out, err := Render(doc, types.TemplateProfessional)
	require.NoError(t, err)
	assert.NotContains(t, out, "PROJECTS")
	assert.NotContains(t, out, "CERTIFICATIONS")
}

func TestRender_ReadOnly(t *testing.T) {
	doc := completeDocument()
	before := doc.Clone()

	_, err := Render(doc, types.TemplateModern)
	require.NoError(t, err)
	assert.Equal(t, before, doc)
}
