package domain

import "testing"

func TestNormalizeLevelDefaultsToDegree(t *testing.T) {
	cases := map[string]Level{
		"Diploma": LevelDiploma,
		"Degree":  LevelDegree,
		"Master":  LevelMaster,
		"PhD":     LevelPhD,
		"":        LevelDegree,
		"degree":  LevelDegree, // level names are exact-match
		"Unknown": LevelDegree,
	}
	for input, want := range cases {
		if got := NormalizeLevel(input); got != want {
			t.Errorf("NormalizeLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestNormalizeTaxonomyDomain(t *testing.T) {
	if got := NormalizeTaxonomyDomain("Affective"); got != DomainAffective {
		t.Fatalf("case-insensitive match failed: %s", got)
	}
	if got := NormalizeTaxonomyDomain("motor"); got != DomainCognitive {
		t.Fatalf("unknown input should default to cognitive, got %s", got)
	}
}

func TestFindStageIsCaseInsensitive(t *testing.T) {
	stage, ok := FindStage(DomainCognitive, "apply")
	if !ok {
		t.Fatal("Apply stage not found")
	}
	if stage.Name != "Apply" {
		t.Fatalf("stage name = %q", stage.Name)
	}
	if len(stage.Verbs) == 0 || stage.Verbs[0] != "apply" {
		t.Fatalf("Apply verbs = %v, want first candidate \"apply\"", stage.Verbs)
	}
	if stage.Criterion == "" || stage.Condition == "" {
		t.Fatal("Apply stage should carry criterion and condition")
	}
}

func TestFindStageReturnsCopy(t *testing.T) {
	stage, _ := FindStage(DomainCognitive, "Apply")
	stage.Verbs[0] = "mutated"
	fresh, _ := FindStage(DomainCognitive, "Apply")
	if fresh.Verbs[0] != "apply" {
		t.Fatal("FindStage exposed shared verb slice")
	}
}

func TestStagesPerDomain(t *testing.T) {
	cases := []struct {
		domain TaxonomyDomain
		count  int
		first  string
	}{
		{DomainCognitive, 6, "Remember"},
		{DomainAffective, 5, "Receive"},
		{DomainPsychomotor, 7, "Perception"},
	}
	for _, tc := range cases {
		stages := Stages(tc.domain)
		if len(stages) != tc.count {
			t.Errorf("%s: %d stages, want %d", tc.domain, len(stages), tc.count)
			continue
		}
		if stages[0].Name != tc.first {
			t.Errorf("%s: first stage %q, want %q", tc.domain, stages[0].Name, tc.first)
		}
		for _, stage := range stages {
			if len(stage.Verbs) == 0 {
				t.Errorf("%s/%s: empty verb vocabulary", tc.domain, stage.Name)
			}
			if stage.Criterion == "" || stage.Condition == "" {
				t.Errorf("%s/%s: missing criterion or condition", tc.domain, stage.Name)
			}
		}
	}
}

func TestStageVerbsUnknownLevel(t *testing.T) {
	if verbs := StageVerbs(DomainCognitive, "Transcend"); verbs != nil {
		t.Fatalf("unknown level should yield nil, got %v", verbs)
	}
}
