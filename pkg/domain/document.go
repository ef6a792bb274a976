package domain

import "encoding/json"

// Table identifies one of the mapping document's keyed tables. The names match
// the wire keys of the network-loaded base document.
type Table string

// Mapping document tables in canonical order.
const (
	TableAttributeObjectives Table = "IEGtoPEO"
	TableObjectiveOutcomes   Table = "PEOtoPLO"
	TableObjectiveStatements Table = "PEOstatements"
	TableOutcomeStatements   Table = "PLOstatements"
	TableBehavioralDomains   Table = "PLOtoVBE"
	TableIndicators          Table = "PLOIndicators"
	TableSubCompetencies     Table = "SCmapping"
)

// Tables returns every mapping table in canonical order.
func Tables() []Table {
	return []Table{
		TableAttributeObjectives,
		TableObjectiveOutcomes,
		TableObjectiveStatements,
		TableOutcomeStatements,
		TableBehavioralDomains,
		TableIndicators,
		TableSubCompetencies,
	}
}

// StatementSet stores per-level statement text keyed by entity id. Source
// documents inconsistently use a level-scoped shape {level: {id: text}} or a
// flat level-independent shape {id: text}; both decode, and resolution tries
// the level-scoped shape first.
type StatementSet struct {
	ByLevel map[Level]map[string]string
	Flat    map[string]string
}

// UnmarshalJSON accepts both statement shapes, including documents mixing the
// two under one table.
func (s *StatementSet) UnmarshalJSON(data []byte) error {
	s.ByLevel = nil
	s.Flat = nil
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if level, ok := asLevel(key); ok {
			var scoped map[string]string
			if err := json.Unmarshal(value, &scoped); err == nil {
				if s.ByLevel == nil {
					s.ByLevel = make(map[Level]map[string]string)
				}
				s.ByLevel[level] = scoped
				continue
			}
		}
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return err
		}
		if s.Flat == nil {
			s.Flat = make(map[string]string)
		}
		s.Flat[key] = text
	}
	return nil
}

// MarshalJSON emits level-scoped entries first, then flat entries, preserving
// whichever shapes the set carries.
func (s StatementSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.ByLevel)+len(s.Flat))
	for level, scoped := range s.ByLevel {
		out[string(level)] = scoped
	}
	for id, text := range s.Flat {
		out[id] = text
	}
	return json.Marshal(out)
}

func asLevel(s string) (Level, bool) {
	for _, l := range Levels() {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Resolve returns the statement for id at the given level, trying the
// level-scoped shape before the flat fallback.
func (s StatementSet) Resolve(level Level, id string) (string, bool) {
	if scoped, ok := s.ByLevel[level]; ok {
		if text, ok := scoped[id]; ok {
			return text, true
		}
	}
	text, ok := s.Flat[id]
	return text, ok
}

// IsEmpty reports whether the set carries no statements in either shape.
func (s StatementSet) IsEmpty() bool {
	for _, scoped := range s.ByLevel {
		if len(scoped) > 0 {
			return false
		}
	}
	return len(s.Flat) == 0
}

// Clone returns a deep copy of the statement set.
func (s StatementSet) Clone() StatementSet {
	cp := StatementSet{}
	if s.ByLevel != nil {
		cp.ByLevel = make(map[Level]map[string]string, len(s.ByLevel))
		for level, scoped := range s.ByLevel {
			inner := make(map[string]string, len(scoped))
			for k, v := range scoped {
				inner[k] = v
			}
			cp.ByLevel[level] = inner
		}
	}
	if s.Flat != nil {
		cp.Flat = make(map[string]string, len(s.Flat))
		for k, v := range s.Flat {
			cp.Flat[k] = v
		}
	}
	return cp
}

// MappingDocument aggregates the mapping tables. It is built once per session
// (load + merge) and immutable thereafter; a fresh load/merge picks up
// override changes made elsewhere.
type MappingDocument struct {
	AttributeObjectives map[string][]string `json:"IEGtoPEO"`
	ObjectiveOutcomes   map[string][]string `json:"PEOtoPLO"`
	ObjectiveStatements StatementSet        `json:"PEOstatements"`
	OutcomeStatements   StatementSet        `json:"PLOstatements"`
	BehavioralDomains   map[string]string   `json:"PLOtoVBE"`
	Indicators          map[string]string   `json:"PLOIndicators"`
	SubCompetencies     map[string]string   `json:"SCmapping"`
}

// OverrideDocument is a partial MappingDocument persisted by the editing
// surface. Any table present and non-empty in it replaces the corresponding
// base table wholesale at merge time.
type OverrideDocument = MappingDocument

// Normalize initialises absent tables to empty maps and drops duplicate ids
// from mapping-table value sequences, preserving first-seen order.
func (d *MappingDocument) Normalize() {
	if d.AttributeObjectives == nil {
		d.AttributeObjectives = map[string][]string{}
	}
	if d.ObjectiveOutcomes == nil {
		d.ObjectiveOutcomes = map[string][]string{}
	}
	if d.BehavioralDomains == nil {
		d.BehavioralDomains = map[string]string{}
	}
	if d.Indicators == nil {
		d.Indicators = map[string]string{}
	}
	if d.SubCompetencies == nil {
		d.SubCompetencies = map[string]string{}
	}
	for key, ids := range d.AttributeObjectives {
		d.AttributeObjectives[key] = dedupe(ids)
	}
	for key, ids := range d.ObjectiveOutcomes {
		d.ObjectiveOutcomes[key] = dedupe(ids)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d MappingDocument) Clone() MappingDocument {
	cp := MappingDocument{
		AttributeObjectives: cloneIDMap(d.AttributeObjectives),
		ObjectiveOutcomes:   cloneIDMap(d.ObjectiveOutcomes),
		ObjectiveStatements: d.ObjectiveStatements.Clone(),
		OutcomeStatements:   d.OutcomeStatements.Clone(),
		BehavioralDomains:   cloneStringMap(d.BehavioralDomains),
		Indicators:          cloneStringMap(d.Indicators),
		SubCompetencies:     cloneStringMap(d.SubCompetencies),
	}
	return cp
}

func cloneIDMap(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
