// Package mapping owns the merged curriculum mapping document: loading the
// base document, merging the persisted override, and exposing typed lookups
// over the result. No other component holds authoritative mapping data.
package mapping

import (
	"sort"

	"clogen/pkg/domain"
)

// Store wraps one merged, immutable mapping document. Lookups never fail on
// unknown keys; they report absence and callers render the unset marker.
// Key comparison is exact string equality, case-sensitive.
type Store struct {
	doc       domain.MappingDocument
	available bool
}

// NewStore builds a store over the supplied document. The document is cloned
// and normalised so later caller mutations cannot leak in.
func NewStore(doc domain.MappingDocument) *Store {
	cloned := doc.Clone()
	cloned.Normalize()
	return &Store{doc: cloned, available: true}
}

// Unavailable returns a store in its terminal failed-load state: every lookup
// reports absent until a subsequent successful load replaces the store.
func Unavailable() *Store {
	return &Store{}
}

// Available reports whether the store holds a loaded document.
func (s *Store) Available() bool { return s.available }

// Document returns a defensive copy of the merged document.
func (s *Store) Document() domain.MappingDocument {
	return s.doc.Clone()
}

// ObjectivesFor returns the objective ids mapped to an attribute, in catalogue
// order. Absent attributes yield an empty sequence.
func (s *Store) ObjectivesFor(attributeID string) []string {
	if !s.available {
		return nil
	}
	return append([]string(nil), s.doc.AttributeObjectives[attributeID]...)
}

// OutcomesFor returns the outcome ids mapped to an objective, in catalogue
// order. Absent objectives yield an empty sequence.
func (s *Store) OutcomesFor(objectiveID string) []string {
	if !s.available {
		return nil
	}
	return append([]string(nil), s.doc.ObjectiveOutcomes[objectiveID]...)
}

// ObjectiveStatement resolves the level-scoped statement for an objective.
func (s *Store) ObjectiveStatement(level domain.Level, objectiveID string) (string, bool) {
	if !s.available {
		return "", false
	}
	return s.doc.ObjectiveStatements.Resolve(level, objectiveID)
}

// OutcomeStatement resolves the statement for an outcome, level-scoped shape
// first, flat shape as fallback.
func (s *Store) OutcomeStatement(level domain.Level, outcomeID string) (string, bool) {
	if !s.available {
		return "", false
	}
	return s.doc.OutcomeStatements.Resolve(level, outcomeID)
}

// SubCompetency returns the sub-competency code attached to an outcome.
func (s *Store) SubCompetency(outcomeID string) (string, bool) {
	if !s.available {
		return "", false
	}
	code, ok := s.doc.SubCompetencies[outcomeID]
	return code, ok
}

// BehavioralDomain returns the behavioral-domain value attached to an outcome.
func (s *Store) BehavioralDomain(outcomeID string) (string, bool) {
	if !s.available {
		return "", false
	}
	v, ok := s.doc.BehavioralDomains[outcomeID]
	return v, ok
}

// Indicator returns the measurement indicator attached to an outcome.
func (s *Store) Indicator(outcomeID string) (string, bool) {
	if !s.available {
		return "", false
	}
	v, ok := s.doc.Indicators[outcomeID]
	return v, ok
}

// KeysOf returns the ids keyed by the given table, sorted ascending for
// deterministic output. Statement tables yield the union of level-scoped and
// flat keys.
func (s *Store) KeysOf(table domain.Table) []string {
	if !s.available {
		return nil
	}
	switch table {
	case domain.TableAttributeObjectives:
		return sortedKeys(s.doc.AttributeObjectives)
	case domain.TableObjectiveOutcomes:
		return sortedKeys(s.doc.ObjectiveOutcomes)
	case domain.TableObjectiveStatements:
		return statementKeys(s.doc.ObjectiveStatements)
	case domain.TableOutcomeStatements:
		return statementKeys(s.doc.OutcomeStatements)
	case domain.TableBehavioralDomains:
		return sortedStringKeys(s.doc.BehavioralDomains)
	case domain.TableIndicators:
		return sortedStringKeys(s.doc.Indicators)
	case domain.TableSubCompetencies:
		return sortedStringKeys(s.doc.SubCompetencies)
	default:
		return nil
	}
}

// AttributesForObjective returns the attribute ids whose objective sets
// contain the given objective, in static catalogue order.
func (s *Store) AttributesForObjective(objectiveID string) []string {
	if !s.available {
		return nil
	}
	var out []string
	for _, attr := range Attributes() {
		for _, id := range s.doc.AttributeObjectives[attr.ID] {
			if id == objectiveID {
				out = append(out, attr.ID)
				break
			}
		}
	}
	// Catalogue entries outside the static attribute list still count.
	for _, key := range sortedKeys(s.doc.AttributeObjectives) {
		if _, known := AttributeLabel(key); known {
			continue
		}
		for _, id := range s.doc.AttributeObjectives[key] {
			if id == objectiveID {
				out = append(out, key)
				break
			}
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedStringKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func statementKeys(set domain.StatementSet) []string {
	seen := map[string]struct{}{}
	for _, scoped := range set.ByLevel {
		for id := range scoped {
			seen[id] = struct{}{}
		}
	}
	for id := range set.Flat {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
