package resolve

import (
	"reflect"
	"testing"

	"clogen/internal/mapping"
	"clogen/pkg/domain"
)

func fixtureStore() *mapping.Store {
	return mapping.NewStore(domain.MappingDocument{
		AttributeObjectives: map[string][]string{"IEG1": {"PEO1", "PEO2"}},
		ObjectiveOutcomes: map[string][]string{
			"PEO1": {"PLO1", "PLO2", "PLO3"},
			"PEO2": {"PLO4"},
		},
		ObjectiveStatements: domain.StatementSet{
			ByLevel: map[domain.Level]map[string]string{
				domain.LevelDegree: {"PEO1": "Produce competent graduates."},
				domain.LevelMaster: {"PEO1": "Produce advanced practitioners."},
			},
		},
		OutcomeStatements: domain.StatementSet{
			ByLevel: map[domain.Level]map[string]string{
				domain.LevelDegree: {"PLO1": "Apply knowledge."},
			},
		},
	})
}

func TestResolverDefaults(t *testing.T) {
	r := New(fixtureStore())
	sel := r.Selection()
	if sel.Level != domain.LevelDegree {
		t.Fatalf("default level = %s", sel.Level)
	}
	if sel.TaxonomyDomain != domain.DomainCognitive {
		t.Fatalf("default taxonomy = %s", sel.TaxonomyDomain)
	}
	if r.ObjectiveCandidates() != nil {
		t.Fatal("no attribute selected, candidates should be nil")
	}
}

func TestSetAttributeClearsDownstream(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")
	r.SetBloomLevel("Apply")
	r.SetVerb("solve")

	candidates := r.SetAttribute("IEG1")
	if !reflect.DeepEqual(candidates, []string{"PEO1", "PEO2"}) {
		t.Fatalf("objective candidates = %v", candidates)
	}
	sel := r.Selection()
	if sel.ObjectiveID != "" || sel.OutcomeIDs != nil || sel.BloomLevel != "" || sel.Verb != "" {
		t.Fatalf("downstream not cleared: %+v", sel)
	}
}

func TestSetObjectivePreselectsAllOutcomes(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	candidates := r.SetObjective("PEO1")
	if !reflect.DeepEqual(candidates, []string{"PLO1", "PLO2", "PLO3"}) {
		t.Fatalf("outcome candidates = %v", candidates)
	}
	if got := r.Selection().OutcomeIDs; !reflect.DeepEqual(got, candidates) {
		t.Fatalf("pre-selected outcomes = %v", got)
	}
}

func TestSetOutcomesDropsStaleAndReorders(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")
	// Input order is ignored; candidate order wins. PLO4 belongs to PEO2 and
	// is dropped.
	kept := r.SetOutcomes([]string{"PLO3", "PLO4", "PLO1"})
	if !reflect.DeepEqual(kept, []string{"PLO1", "PLO3"}) {
		t.Fatalf("kept = %v", kept)
	}
}

func TestSetBloomLevelClearsVerb(t *testing.T) {
	r := New(fixtureStore())
	r.SetVerb("solve")
	verbs := r.SetBloomLevel("Apply")
	if len(verbs) == 0 || verbs[0] != "apply" {
		t.Fatalf("verb candidates = %v", verbs)
	}
	if r.Selection().Verb != "" {
		t.Fatal("verb not cleared by bloom level change")
	}
	if verbs := r.SetBloomLevel("Transcend"); verbs != nil {
		t.Fatalf("unknown bloom level yielded %v", verbs)
	}
}

func TestSetTaxonomyDomainClearsBloomAndVerb(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")
	r.SetBloomLevel("Apply")
	r.SetVerb("use")
	r.SetTaxonomyDomain(domain.DomainPsychomotor)
	sel := r.Selection()
	if sel.BloomLevel != "" || sel.Verb != "" {
		t.Fatalf("bloom/verb not cleared: %+v", sel)
	}
	// Hierarchy selection survives the taxonomy switch.
	if sel.ObjectiveID != "PEO1" || len(sel.OutcomeIDs) != 3 {
		t.Fatalf("hierarchy selection cleared: %+v", sel)
	}
}

func TestSetLevelClearsNothing(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")
	r.SetOutcomes([]string{"PLO1"})
	r.SetBloomLevel("Apply")
	r.SetVerb("solve")

	before := r.Selection()
	r.SetLevel(domain.LevelMaster)
	after := r.Selection()
	before.Level = domain.LevelMaster
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("level change altered selection: %+v vs %+v", before, after)
	}

	texts := r.StatementTexts()
	if texts.ObjectiveStatement != "Produce advanced practitioners." {
		t.Fatalf("Master objective statement = %q", texts.ObjectiveStatement)
	}
}

func TestStatementTextsRenderUnsetMarker(t *testing.T) {
	r := New(fixtureStore())
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")
	r.SetOutcomes([]string{"PLO1", "PLO2"})

	texts := r.StatementTexts()
	if texts.ObjectiveStatement != "Produce competent graduates." {
		t.Fatalf("objective statement = %q", texts.ObjectiveStatement)
	}
	if len(texts.Outcomes) != 2 {
		t.Fatalf("outcome texts = %v", texts.Outcomes)
	}
	if texts.Outcomes[0].Statement != "Apply knowledge." {
		t.Fatalf("PLO1 statement = %q", texts.Outcomes[0].Statement)
	}
	if texts.Outcomes[1].Statement != domain.UnsetMarker {
		t.Fatalf("absent statement = %q, want unset marker", texts.Outcomes[1].Statement)
	}
}

func TestReplaceStoreResetsHierarchy(t *testing.T) {
	r := New(fixtureStore())
	r.SetLevel(domain.LevelMaster)
	r.SetTaxonomyDomain(domain.DomainAffective)
	r.SetAttribute("IEG1")
	r.SetObjective("PEO1")

	r.ReplaceStore(mapping.Unavailable())
	sel := r.Selection()
	if sel.AttributeID != "" || sel.ObjectiveID != "" || sel.OutcomeIDs != nil {
		t.Fatalf("hierarchy not reset: %+v", sel)
	}
	if sel.Level != domain.LevelMaster || sel.TaxonomyDomain != domain.DomainAffective {
		t.Fatalf("level/taxonomy should survive a store swap: %+v", sel)
	}
}
