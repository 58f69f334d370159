// Package completeness computes per-section completion flags and the overall
// readiness predicate that gates export.
package completeness

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Report holds the section flags plus the derived readiness predicate.
type Report struct {
	PersonalInfo bool `json:"personal_info"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Skills       bool `json:"skills"`
	IsComplete   bool `json:"is_complete"`
}

// Evaluate computes the completeness report for a document. Pure: safe to
// call on every mutation and render without observable effect.
//
// Rules:
//   - personal info counts once full name and email are both non-empty;
//     no format validation happens at this layer
//   - skills counts on technical or soft entries; languages never count
//   - overall readiness requires personal info, skills, and at least one of
//     experience or education
func Evaluate(doc *types.Document) Report {
	if doc == nil {
		return Report{}
	}

	r := Report{
		PersonalInfo: doc.PersonalInfo.FullName != "" && doc.PersonalInfo.Email != "",
		Experience:   len(doc.Experience) > 0,
		Education:    len(doc.Education) > 0,
		Skills:       len(doc.Skills.Technical) > 0 || len(doc.Skills.Soft) > 0,
	}
	r.IsComplete = r.PersonalInfo && (r.Experience || r.Education) && r.Skills
	return r
}
