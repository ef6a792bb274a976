// Package synth renders a resolved selection plus Bloom-level, verb, and
// assessment choices into a CLO statement and a structured record.
package synth

import (
	"fmt"
	"strings"
	"time"

	"clogen/internal/mapping"
	"clogen/pkg/domain"
)

// statementTemplate is the fixed six-clause shape of a synthesized CLO. Any
// clause whose source data is entirely empty renders as "N/A" so the output
// shape stays stable for downstream parsing and export.
const statementTemplate = "Upon successful completion of %s, students will be able to %s competencies related to %s. %s. This aligns to %s and develops graduate attributes: %s. %s. %s."

const emptyClause = "N/A"

// Synthesizer assembles GeneratedRecords from selections against the mapping
// store. It holds no mutable state beyond its clock.
type Synthesizer struct {
	store *mapping.Store
	now   func() time.Time
}

// New constructs a synthesizer over the given store.
func New(store *mapping.Store) *Synthesizer {
	return &Synthesizer{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Synthesize builds one record for the course label from the selection.
// It fails with domain.ErrMissingSelection when no outcome is selected and
// mutates nothing.
func (s *Synthesizer) Synthesize(sel domain.Selection, courseLabel string) (domain.GeneratedRecord, error) {
	if len(sel.OutcomeIDs) == 0 {
		return domain.GeneratedRecord{}, domain.ErrMissingSelection
	}

	level := domain.NormalizeLevel(string(sel.Level))
	taxonomy := domain.NormalizeTaxonomyDomain(string(sel.TaxonomyDomain))
	verb := resolveVerb(sel, taxonomy)

	outcomeParts := make([]string, 0, len(sel.OutcomeIDs))
	subCompetencies := []string{}
	behavioralDomains := []string{}
	statements := []string{}
	indicators := make([]string, 0, len(sel.OutcomeIDs))
	seenDomains := map[string]struct{}{}

	for _, id := range sel.OutcomeIDs {
		part := id
		if code, ok := s.store.SubCompetency(id); ok && code != "" {
			part = fmt.Sprintf("%s (SC: %s)", id, code)
			subCompetencies = append(subCompetencies, code)
		}
		outcomeParts = append(outcomeParts, part)

		if stmt, ok := s.store.OutcomeStatement(level, id); ok && stmt != "" {
			statements = append(statements, stmt)
		}
		if vbe, ok := s.store.BehavioralDomain(id); ok && vbe != "" {
			if _, dup := seenDomains[vbe]; !dup {
				seenDomains[vbe] = struct{}{}
				behavioralDomains = append(behavioralDomains, vbe)
			}
		}
		if ind, ok := s.store.Indicator(id); ok && ind != "" {
			indicators = append(indicators, fmt.Sprintf("%s: %s", id, ind))
		} else {
			indicators = append(indicators, fmt.Sprintf("%s: %s", id, domain.NoIndicatorMarker))
		}
	}

	attributeIDs := s.resolveAttributes(sel)
	assessments := sel.AssessmentMethods
	if len(assessments) == 0 {
		assessments = SuggestAssessments(sel.OutcomeIDs)
	}

	statementClause := strings.TrimSuffix(strings.Join(statements, " "), ".")
	domainClause := emptyClause
	if len(behavioralDomains) > 0 {
		domainClause = "Behavioral domains addressed: " + strings.Join(behavioralDomains, ", ")
	}
	indicatorClause := emptyClause
	if len(indicators) > 0 {
		indicatorClause = "Indicators: " + strings.Join(indicators, "; ")
	}

	statement := fmt.Sprintf(statementTemplate,
		courseLabel,
		verb,
		orNA(strings.Join(outcomeParts, ", ")),
		orNA(statementClause),
		orNA(sel.ObjectiveID),
		orNA(attributeList(attributeIDs)),
		domainClause,
		indicatorClause,
	)

	record := domain.GeneratedRecord{
		CourseLabel:       courseLabel,
		Level:             level,
		AttributeIDs:      attributeIDs,
		ObjectiveID:       sel.ObjectiveID,
		OutcomeIDs:        append([]string(nil), sel.OutcomeIDs...),
		SubCompetencies:   subCompetencies,
		BehavioralDomains: behavioralDomains,
		Indicators:        indicators,
		BloomLevel:        sel.BloomLevel,
		Verb:              verb,
		AssessmentMethods: append([]string(nil), assessments...),
		Statement:         statement,
		CreatedAt:         s.now(),
	}
	if stage, ok := domain.FindStage(taxonomy, sel.BloomLevel); ok {
		record.Criterion = stage.Criterion
		record.Condition = stage.Condition
	}
	return record, nil
}

// SynthesizeBulk builds one record per course label against the frozen
// selection. Labels are substituted independently; no state is shared across
// iterations beyond the selection itself.
func (s *Synthesizer) SynthesizeBulk(sel domain.Selection, courseLabels []string) ([]domain.GeneratedRecord, error) {
	frozen := sel.Clone()
	out := make([]domain.GeneratedRecord, 0, len(courseLabels))
	for _, label := range courseLabels {
		record, err := s.Synthesize(frozen, label)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func resolveVerb(sel domain.Selection, taxonomy domain.TaxonomyDomain) string {
	if sel.Verb != "" {
		return sel.Verb
	}
	if verbs := domain.StageVerbs(taxonomy, sel.BloomLevel); len(verbs) > 0 {
		return verbs[0]
	}
	return domain.FallbackVerb
}

func (s *Synthesizer) resolveAttributes(sel domain.Selection) []string {
	if sel.AttributeID != "" {
		return []string{sel.AttributeID}
	}
	return s.store.AttributesForObjective(sel.ObjectiveID)
}

func attributeList(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := mapping.AttributeLabel(id); ok {
			parts = append(parts, fmt.Sprintf("%s (%s)", id, label))
			continue
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, ", ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyClause
	}
	return s
}
