// Package domain defines the curriculum hierarchy entities, mapping document
// tables, and selection/record value types used by clogen.
package domain

import "time"

// Level identifies a programme hierarchy level.
type Level string

// Canonical hierarchy levels, ordered. Statement text is scoped by level;
// id structure is not.
const (
	// LevelDiploma identifies the diploma programme tier.
	LevelDiploma Level = "Diploma"
	// LevelDegree identifies the undergraduate degree tier (default).
	LevelDegree Level = "Degree"
	// LevelMaster identifies the master programme tier.
	LevelMaster Level = "Master"
	// LevelPhD identifies the doctoral programme tier.
	LevelPhD Level = "PhD"
)

// Levels returns the four hierarchy levels in canonical order.
func Levels() []Level {
	return []Level{LevelDiploma, LevelDegree, LevelMaster, LevelPhD}
}

// NormalizeLevel maps arbitrary input onto a canonical level. Unknown or empty
// input falls back to LevelDegree; a level never blocks generation.
func NormalizeLevel(s string) Level {
	for _, l := range Levels() {
		if string(l) == s {
			return l
		}
	}
	return LevelDegree
}

// Attribute is a graduate/institutional attribute (IEG) catalogue entry.
type Attribute struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Selection is the transient cursor state narrowed by the cascade resolver.
// Candidate sets are derived from the mapping document, never stored here.
type Selection struct {
	Level             Level          `json:"level"`
	AttributeID       string         `json:"attribute_id,omitempty"`
	ObjectiveID       string         `json:"objective_id,omitempty"`
	OutcomeIDs        []string       `json:"outcome_ids,omitempty"`
	TaxonomyDomain    TaxonomyDomain `json:"taxonomy_domain"`
	BloomLevel        string         `json:"bloom_level,omitempty"`
	Verb              string         `json:"verb,omitempty"`
	AssessmentMethods []string       `json:"assessment_methods,omitempty"`
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	cp := s
	cp.OutcomeIDs = append([]string(nil), s.OutcomeIDs...)
	cp.AssessmentMethods = append([]string(nil), s.AssessmentMethods...)
	return cp
}

// GeneratedRecord is one synthesized CLO. Immutable once created; the session
// list is append/delete-only and never persisted beyond the session.
type GeneratedRecord struct {
	CourseLabel       string    `json:"course_label"`
	Level             Level     `json:"level"`
	AttributeIDs      []string  `json:"attribute_ids,omitempty"`
	ObjectiveID       string    `json:"objective_id"`
	OutcomeIDs        []string  `json:"outcome_ids"`
	SubCompetencies   []string  `json:"sub_competencies,omitempty"`
	BehavioralDomains []string  `json:"behavioral_domains,omitempty"`
	Indicators        []string  `json:"indicators,omitempty"`
	BloomLevel        string    `json:"bloom_level"`
	Verb              string    `json:"verb"`
	AssessmentMethods []string  `json:"assessment_methods,omitempty"`
	Criterion         string    `json:"criterion,omitempty"`
	Condition         string    `json:"condition,omitempty"`
	Statement         string    `json:"statement"`
	CreatedAt         time.Time `json:"created_at"`
}

// Clone returns a deep copy of the record.
func (r GeneratedRecord) Clone() GeneratedRecord {
	cp := r
	cp.AttributeIDs = append([]string(nil), r.AttributeIDs...)
	cp.OutcomeIDs = append([]string(nil), r.OutcomeIDs...)
	cp.SubCompetencies = append([]string(nil), r.SubCompetencies...)
	cp.BehavioralDomains = append([]string(nil), r.BehavioralDomains...)
	cp.Indicators = append([]string(nil), r.Indicators...)
	cp.AssessmentMethods = append([]string(nil), r.AssessmentMethods...)
	return cp
}
