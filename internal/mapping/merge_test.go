package mapping

import (
	"reflect"
	"testing"

	"clogen/pkg/domain"
)

func baseDocument() domain.MappingDocument {
	return domain.MappingDocument{
		AttributeObjectives: map[string][]string{"IEG1": {"PEO1"}, "IEG2": {"PEO2"}},
		ObjectiveOutcomes:   map[string][]string{"PEO1": {"PLO1", "PLO2"}, "PEO2": {"PLO3"}},
		OutcomeStatements: domain.StatementSet{
			ByLevel: map[domain.Level]map[string]string{
				domain.LevelDegree: {"PLO1": "Apply knowledge.", "PLO2": "Communicate."},
			},
		},
		SubCompetencies:   map[string]string{"PLO1": "SC4"},
		BehavioralDomains: map[string]string{"PLO2": "Communication"},
		Indicators:        map[string]string{"PLO1": "solves graded problems"},
	}
}

func TestMergeNilOverrideReproducesBase(t *testing.T) {
	base := baseDocument()
	merged := Merge(base, nil)
	if !reflect.DeepEqual(merged.AttributeObjectives, base.AttributeObjectives) {
		t.Fatalf("attribute table changed: %v", merged.AttributeObjectives)
	}
	if !reflect.DeepEqual(merged.ObjectiveOutcomes, base.ObjectiveOutcomes) {
		t.Fatalf("outcome table changed: %v", merged.ObjectiveOutcomes)
	}
}

func TestMergeReplacesTablesWholesale(t *testing.T) {
	base := baseDocument()
	override := domain.OverrideDocument{
		// Partial table: names only PEO1. The base's IEG2 entry must vanish,
		// not merge.
		AttributeObjectives: map[string][]string{"IEG1": {"PEO1"}},
		SubCompetencies:     map[string]string{"PLO2": "SC7"},
	}
	merged := Merge(base, &override)

	if _, ok := merged.AttributeObjectives["IEG2"]; ok {
		t.Fatal("override table should replace the base table wholesale")
	}
	if _, ok := merged.SubCompetencies["PLO1"]; ok {
		t.Fatal("base sub-competency entry survived a wholesale replacement")
	}
	if merged.SubCompetencies["PLO2"] != "SC7" {
		t.Fatalf("override entry missing: %v", merged.SubCompetencies)
	}
	// Untouched tables keep base content.
	if !reflect.DeepEqual(merged.ObjectiveOutcomes, base.ObjectiveOutcomes) {
		t.Fatalf("untouched table changed: %v", merged.ObjectiveOutcomes)
	}
	if merged.BehavioralDomains["PLO2"] != "Communication" {
		t.Fatal("untouched behavioral table changed")
	}
}

func TestMergeEmptyOverrideTablesKeepBase(t *testing.T) {
	base := baseDocument()
	override := domain.OverrideDocument{
		AttributeObjectives: map[string][]string{},
		OutcomeStatements:   domain.StatementSet{},
	}
	merged := Merge(base, &override)
	if !reflect.DeepEqual(merged.AttributeObjectives, base.AttributeObjectives) {
		t.Fatal("empty override table should not replace the base table")
	}
	if text, ok := merged.OutcomeStatements.Resolve(domain.LevelDegree, "PLO1"); !ok || text != "Apply knowledge." {
		t.Fatalf("statement table replaced by empty set: %q, %v", text, ok)
	}
}

func TestMergeStatementSetReplacement(t *testing.T) {
	base := baseDocument()
	override := domain.OverrideDocument{
		OutcomeStatements: domain.StatementSet{Flat: map[string]string{"PLO1": "Override text."}},
	}
	merged := Merge(base, &override)
	if text, _ := merged.OutcomeStatements.Resolve(domain.LevelDegree, "PLO1"); text != "Override text." {
		t.Fatalf("PLO1 = %q", text)
	}
	if _, ok := merged.OutcomeStatements.Resolve(domain.LevelDegree, "PLO2"); ok {
		t.Fatal("base-only statement survived a wholesale replacement")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	base := baseDocument()
	override := domain.OverrideDocument{
		ObjectiveOutcomes: map[string][]string{"PEO1": {"PLO1"}},
	}
	once := Merge(base, &override)
	twice := Merge(once, &override)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("merging the same override twice diverged")
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := baseDocument()
	override := domain.OverrideDocument{
		ObjectiveOutcomes: map[string][]string{"PEO1": {"PLO1"}},
	}
	merged := Merge(base, &override)
	merged.ObjectiveOutcomes["PEO1"][0] = "PLO9"
	if override.ObjectiveOutcomes["PEO1"][0] != "PLO1" {
		t.Fatal("merge result aliases override slices")
	}
	if base.ObjectiveOutcomes["PEO1"][0] != "PLO1" {
		t.Fatal("merge result aliases base slices")
	}
}
