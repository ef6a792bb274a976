package mapping

import "clogen/pkg/domain"

// Merge combines the base mapping document with a persisted override under
// table-level precedence: a table present and non-empty in the override
// replaces the corresponding base table wholesale. Tables are never
// deep-merged key by key, so an override carrying a partial table drops the
// base entries that table no longer names; override producers must always
// save complete tables. A nil override reproduces the base document.
func Merge(base domain.MappingDocument, override *domain.OverrideDocument) domain.MappingDocument {
	merged := base.Clone()
	merged.Normalize()
	if override == nil {
		return merged
	}
	if len(override.AttributeObjectives) > 0 {
		merged.AttributeObjectives = cloneTable(override.AttributeObjectives)
	}
	if len(override.ObjectiveOutcomes) > 0 {
		merged.ObjectiveOutcomes = cloneTable(override.ObjectiveOutcomes)
	}
	if !override.ObjectiveStatements.IsEmpty() {
		merged.ObjectiveStatements = override.ObjectiveStatements.Clone()
	}
	if !override.OutcomeStatements.IsEmpty() {
		merged.OutcomeStatements = override.OutcomeStatements.Clone()
	}
	if len(override.BehavioralDomains) > 0 {
		merged.BehavioralDomains = cloneScalarTable(override.BehavioralDomains)
	}
	if len(override.Indicators) > 0 {
		merged.Indicators = cloneScalarTable(override.Indicators)
	}
	if len(override.SubCompetencies) > 0 {
		merged.SubCompetencies = cloneScalarTable(override.SubCompetencies)
	}
	merged.Normalize()
	return merged
}

func cloneTable(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func cloneScalarTable(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
