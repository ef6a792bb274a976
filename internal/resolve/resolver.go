// Package resolve implements the cascading selection state machine. Fields
// are ordered level → attribute → objective → outcome set → bloom level →
// verb; setting a field clears everything downstream of it so a record can
// never be synthesized from a selection whose outcomes no longer belong to
// the active objective.
package resolve

import (
	"clogen/internal/mapping"
	"clogen/pkg/domain"
)

// Resolver narrows a Selection against the mapping store. Candidate sets are
// always derived from the store, never mutated in place.
type Resolver struct {
	store *mapping.Store
	sel   domain.Selection
}

// New constructs a resolver with the default selection: Degree level,
// cognitive taxonomy domain, nothing selected.
func New(store *mapping.Store) *Resolver {
	return &Resolver{
		store: store,
		sel: domain.Selection{
			Level:          domain.LevelDegree,
			TaxonomyDomain: domain.DomainCognitive,
		},
	}
}

// ReplaceStore swaps in a freshly merged store (after a reload) and resets
// the hierarchy selection, which may no longer be valid against the new
// document. Level and taxonomy domain survive.
func (r *Resolver) ReplaceStore(store *mapping.Store) {
	r.store = store
	r.sel.AttributeID = ""
	r.clearFromObjective()
}

// Selection returns a copy of the current cursor state.
func (r *Resolver) Selection() domain.Selection {
	return r.sel.Clone()
}

// SetLevel re-scopes statement text only. It deliberately clears nothing:
// selected ids are level-independent and statement text is a lazily derived
// display value.
func (r *Resolver) SetLevel(level domain.Level) {
	r.sel.Level = domain.NormalizeLevel(string(level))
}

// SetTaxonomyDomain switches the Bloom taxonomy domain and clears the bloom
// level and verb, whose vocabulary it scopes.
func (r *Resolver) SetTaxonomyDomain(d domain.TaxonomyDomain) {
	r.sel.TaxonomyDomain = domain.NormalizeTaxonomyDomain(string(d))
	r.sel.BloomLevel = ""
	r.sel.Verb = ""
}

// SetAttribute selects an attribute and clears the objective, outcome set,
// bloom level, and verb. It returns the objective candidates for the new
// attribute; an empty sequence means nothing is selectable.
func (r *Resolver) SetAttribute(attributeID string) []string {
	r.sel.AttributeID = attributeID
	r.clearFromObjective()
	return r.ObjectiveCandidates()
}

// ObjectiveCandidates returns the valid objectives for the selected
// attribute.
func (r *Resolver) ObjectiveCandidates() []string {
	if r.sel.AttributeID == "" {
		return nil
	}
	return r.store.ObjectivesFor(r.sel.AttributeID)
}

// SetObjective selects an objective, pre-selects every outcome it maps to in
// catalogue order, and clears the bloom level and verb. It returns the
// outcome candidates.
func (r *Resolver) SetObjective(objectiveID string) []string {
	r.sel.ObjectiveID = objectiveID
	candidates := r.OutcomeCandidates()
	r.sel.OutcomeIDs = append([]string(nil), candidates...)
	r.sel.BloomLevel = ""
	r.sel.Verb = ""
	return candidates
}

// OutcomeCandidates returns the valid outcomes for the selected objective in
// catalogue order.
func (r *Resolver) OutcomeCandidates() []string {
	if r.sel.ObjectiveID == "" {
		return nil
	}
	return r.store.OutcomesFor(r.sel.ObjectiveID)
}

// SetOutcomes narrows the pre-selected outcome set. Ids outside the candidate
// set are dropped rather than retained; candidate order is preserved
// regardless of input order.
func (r *Resolver) SetOutcomes(outcomeIDs []string) []string {
	wanted := make(map[string]struct{}, len(outcomeIDs))
	for _, id := range outcomeIDs {
		wanted[id] = struct{}{}
	}
	kept := []string{}
	for _, id := range r.OutcomeCandidates() {
		if _, ok := wanted[id]; ok {
			kept = append(kept, id)
		}
	}
	r.sel.OutcomeIDs = kept
	return append([]string(nil), kept...)
}

// SetBloomLevel selects a Bloom level and clears the verb. It returns the
// candidate verb vocabulary for the level, empty when the level is unknown
// within the active taxonomy domain.
func (r *Resolver) SetBloomLevel(name string) []string {
	r.sel.BloomLevel = name
	r.sel.Verb = ""
	return r.VerbCandidates()
}

// VerbCandidates returns the ordered verb vocabulary for the selected Bloom
// level.
func (r *Resolver) VerbCandidates() []string {
	if r.sel.BloomLevel == "" {
		return nil
	}
	return domain.StageVerbs(r.sel.TaxonomyDomain, r.sel.BloomLevel)
}

// SetVerb records an explicit verb override.
func (r *Resolver) SetVerb(verb string) {
	r.sel.Verb = verb
}

// SetAssessmentMethods records operator-chosen assessment methods, deduplicated
// in first-seen order.
func (r *Resolver) SetAssessmentMethods(methods []string) {
	seen := make(map[string]struct{}, len(methods))
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	r.sel.AssessmentMethods = out
}

// OutcomeText pairs an outcome id with its level-scoped statement text.
type OutcomeText struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
}

// ResolvedTexts carries the display-only statement derivatives for the
// current selection at its level. Absent statements render the unset marker.
type ResolvedTexts struct {
	ObjectiveStatement string        `json:"objective_statement"`
	Outcomes           []OutcomeText `json:"outcomes"`
}

// StatementTexts lazily resolves level-scoped statement text for the selected
// objective and outcomes. It is recomputed on demand, never stored in the
// selection.
func (r *Resolver) StatementTexts() ResolvedTexts {
	texts := ResolvedTexts{ObjectiveStatement: domain.UnsetMarker}
	if r.sel.ObjectiveID != "" {
		if stmt, ok := r.store.ObjectiveStatement(r.sel.Level, r.sel.ObjectiveID); ok {
			texts.ObjectiveStatement = stmt
		}
	}
	for _, id := range r.sel.OutcomeIDs {
		stmt, ok := r.store.OutcomeStatement(r.sel.Level, id)
		if !ok {
			stmt = domain.UnsetMarker
		}
		texts.Outcomes = append(texts.Outcomes, OutcomeText{ID: id, Statement: stmt})
	}
	return texts
}

func (r *Resolver) clearFromObjective() {
	r.sel.ObjectiveID = ""
	r.sel.OutcomeIDs = nil
	r.sel.BloomLevel = ""
	r.sel.Verb = ""
}
