// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

// PersonalInfo holds the free-text header fields of a resume document.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceEntry represents a single work experience entry with stable ID
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// EducationEntry represents a single education entry with stable ID
type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ProjectEntry represents a single project entry with stable ID
type ProjectEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// CertificationEntry represents a single certification entry with stable ID
type CertificationEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// SkillItem represents a named skill with a proficiency level.
// Level is always in the 1..5 range after migration.
type SkillItem struct {
	Name  string `json:"name" validate:"required,min=1"`
	Level int    `json:"level" validate:"required,min=1,max=5"`
}

// SkillGroups holds skills split into the three fixed categories.
type SkillGroups struct {
	Technical []SkillItem `json:"technical"`
	Soft      []SkillItem `json:"soft"`
	Languages []SkillItem `json:"languages"`
}

// Document is the single working resume being edited.
type Document struct {
	PersonalInfo   PersonalInfo         `json:"personal_info"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         SkillGroups          `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
}

// NewDocument returns the all-empty default document.
func NewDocument() *Document {
	return &Document{
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         SkillGroups{Technical: []SkillItem{}, Soft: []SkillItem{}, Languages: []SkillItem{}},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
	}
}

// IsEmpty reports whether the document is semantically equal to the all-empty
// default: blank personal info and no entries in any list. Used by the
// sign-in transfer policy, which must not treat a re-serialized default as
// account data worth protecting.
func (d *Document) IsEmpty() bool {
	if d == nil {
		return true
	}
	if d.PersonalInfo != (PersonalInfo{}) {
		return false
	}
	return len(d.Experience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills.Technical) == 0 &&
		len(d.Skills.Soft) == 0 &&
		len(d.Skills.Languages) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Certifications) == 0
}

// Clone returns a deep copy of the document. Snapshots handed to the store or
// to read-only collaborators must not alias the controller's working copy.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Experience = append([]ExperienceEntry{}, d.Experience...)
	out.Education = append([]EducationEntry{}, d.Education...)
	out.Projects = append([]ProjectEntry{}, d.Projects...)
	out.Certifications = append([]CertificationEntry{}, d.Certifications...)
	out.Skills = SkillGroups{
		Technical: append([]SkillItem{}, d.Skills.Technical...),
		Soft:      append([]SkillItem{}, d.Skills.Soft...),
		Languages: append([]SkillItem{}, d.Skills.Languages...),
	}
	return &out
}

// SectionName identifies one top-level replaceable section of a Document.
type SectionName string

// Section name constants accepted by UpdateSection.
const (
	SectionPersonalInfo   SectionName = "personal_info"
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionSkills         SectionName = "skills"
	SectionProjects       SectionName = "projects"
	SectionCertifications SectionName = "certifications"
)

// ValidSection reports whether name is a known document section.
func ValidSection(name SectionName) bool {
	switch name {
	case SectionPersonalInfo, SectionExperience, SectionEducation,
		SectionSkills, SectionProjects, SectionCertifications:
		return true
	}
	return false
}
