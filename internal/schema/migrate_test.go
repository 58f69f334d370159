package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestMigrate_EmptyAndMalformedInput(t *testing.T) {
	t.Run("nil payload yields default document", func(t *testing.T) {
		doc := Migrate(nil)
		require.NotNil(t, doc)
		assert.True(t, doc.IsEmpty())
		assert.NotNil(t, doc.Experience)
		assert.NotNil(t, doc.Skills.Technical)
	})

	t.Run("garbage payload yields default document", func(t *testing.T) {
		doc := Migrate([]byte(`{"personal_info": 12, truncated`))
		require.NotNil(t, doc)
		assert.True(t, doc.IsEmpty())
	})

	t.Run("empty object yields default document", func(t *testing.T) {
		doc := Migrate([]byte(`{}`))
		require.NotNil(t, doc)
		assert.True(t, doc.IsEmpty())
	})
}

func TestMigrate_LegacySkills(t *testing.T) {
	raw := []byte(`{
		"personal_info": {"full_name": "Ada Lovelace", "email": "ada@example.com"},
		"skills": {
			"technical": ["SQL", "Go"],
			"soft": [{"name": "Communication", "level": 4}],
			"languages": []
		}
	}`)

	doc := Migrate(raw)
	require.NotNil(t, doc)

	assert.Equal(t, []types.SkillItem{
		{Name: "SQL", Level: 3},
		{Name: "Go", Level: 3},
	}, doc.Skills.Technical, "bare-string skills get level 3")

	assert.Equal(t, []types.SkillItem{
		{Name: "Communication", Level: 4},
	}, doc.Skills.Soft, "current-shape skills pass through unchanged")

	assert.Empty(t, doc.Skills.Languages)
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.FullName)
}

func TestMigrate_Idempotent(t *testing.T) {
	raw := []byte(`{
		"personal_info": {"full_name": "A", "email": "a@b.com"},
		"experience": [{"id": "e1", "company": "Acme", "role": "Engineer"}],
		"skills": {"technical": ["Go"], "soft": [], "languages": ["Spanish"]}
	}`)

	once := Migrate(raw)

	reserialized, err := json.Marshal(once)
	require.NoError(t, err)
	twice := Migrate(reserialized)

	assert.Equal(t, once, twice)
}

func TestMigrate_MalformedSkillCategory(t *testing.T) {
	// A category that is neither strings nor skill items is dropped, not fatal.
	raw := []byte(`{
		"personal_info": {"full_name": "A", "email": "a@b.com"},
		"skills": {"technical": [42], "soft": [{"name": "Teamwork", "level": 2}], "languages": null}
	}`)

	doc := Migrate(raw)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Skills.Technical)
	assert.Equal(t, []types.SkillItem{{Name: "Teamwork", Level: 2}}, doc.Skills.Soft)
	assert.Empty(t, doc.Skills.Languages)
}

func TestMigrate_PreservesEntryIDs(t *testing.T) {
	raw := []byte(`{
		"experience": [{"id": "exp-1", "company": "Acme"}],
		"education": [{"id": "edu-1", "school": "MIT", "degree": "BSc"}],
		"projects": [{"id": "prj-1", "name": "Builder"}],
		"certifications": [{"id": "crt-1", "name": "CKA"}]
	}`)

	doc := Migrate(raw)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "exp-1", doc.Experience[0].ID)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "edu-1", doc.Education[0].ID)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "prj-1", doc.Projects[0].ID)
	require.Len(t, doc.Certifications, 1)
	assert.Equal(t, "crt-1", doc.Certifications[0].ID)
}

func TestMigrateDocument(t *testing.T) {
	t.Run("nil yields default", func(t *testing.T) {
		doc := MigrateDocument(nil)
		require.NotNil(t, doc)
		assert.True(t, doc.IsEmpty())
	})

	t.Run("nil slices become empty", func(t *testing.T) {
		doc := MigrateDocument(&types.Document{})
		assert.NotNil(t, doc.Experience)
		assert.NotNil(t, doc.Skills.Languages)
	})
}
