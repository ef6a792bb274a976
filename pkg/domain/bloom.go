package domain

import "strings"

// TaxonomyDomain identifies a Bloom taxonomy domain.
type TaxonomyDomain string

// Canonical taxonomy domains.
const (
	DomainCognitive   TaxonomyDomain = "cognitive"
	DomainAffective   TaxonomyDomain = "affective"
	DomainPsychomotor TaxonomyDomain = "psychomotor"
)

// TaxonomyDomains returns the taxonomy domains in canonical order.
func TaxonomyDomains() []TaxonomyDomain {
	return []TaxonomyDomain{DomainCognitive, DomainAffective, DomainPsychomotor}
}

// NormalizeTaxonomyDomain maps arbitrary input onto a canonical domain,
// defaulting to cognitive.
func NormalizeTaxonomyDomain(s string) TaxonomyDomain {
	for _, d := range TaxonomyDomains() {
		if strings.EqualFold(string(d), s) {
			return d
		}
	}
	return DomainCognitive
}

// FallbackVerb phrases a statement when neither an explicit verb nor a Bloom
// vocabulary entry is available.
const FallbackVerb = "demonstrate"

// BloomStage is one tier of a taxonomy domain: its action-verb vocabulary and
// the performance criterion/condition phrasing attached to that tier.
type BloomStage struct {
	Name      string   `json:"name"`
	Verbs     []string `json:"verbs"`
	Criterion string   `json:"criterion"`
	Condition string   `json:"condition"`
}

var bloomStages = map[TaxonomyDomain][]BloomStage{
	DomainCognitive: {
		{
			Name:      "Remember",
			Verbs:     []string{"recall", "define", "list", "identify", "name"},
			Criterion: "accurately",
			Condition: "when recalling key concepts, principles, or foundational information",
		},
		{
			Name:      "Understand",
			Verbs:     []string{"explain", "summarize", "classify", "interpret", "discuss"},
			Criterion: "clearly and coherently",
			Condition: "when interpreting relationships, processes, or mechanisms in a given context",
		},
		{
			Name:      "Apply",
			Verbs:     []string{"apply", "demonstrate", "implement", "solve", "use"},
			Criterion: "effectively",
			Condition: "when applying knowledge, data, tools, or methods to relevant tasks, results, or case scenarios",
		},
		{
			Name:      "Analyze",
			Verbs:     []string{"analyze", "differentiate", "examine", "compare", "organize"},
			Criterion: "critically",
			Condition: "when examining information from multiple sources or breaking down complex issues",
		},
		{
			Name:      "Evaluate",
			Verbs:     []string{"evaluate", "justify", "critique", "assess", "defend"},
			Criterion: "independently and with sound judgment",
			Condition: "when assessing alternatives or making decisions in analytical or problem-solving situations",
		},
		{
			Name:      "Create",
			Verbs:     []string{"design", "construct", "develop", "formulate", "compose"},
			Criterion: "innovatively and systematically",
			Condition: "when generating new ideas, solutions, designs, or approaches",
		},
	},
	DomainAffective: {
		{
			Name:      "Receive",
			Verbs:     []string{"acknowledge", "listen", "attend", "follow"},
			Criterion: "with openness and respect",
			Condition: "when engaging with information, peers, stakeholders, or diverse perspectives in academic or professional contexts",
		},
		{
			Name:      "Respond",
			Verbs:     []string{"participate", "contribute", "discuss", "present"},
			Criterion: "actively and responsibly",
			Condition: "when participating in teamwork, collaboration, dialogue, or structured feedback activities",
		},
		{
			Name:      "Value",
			Verbs:     []string{"demonstrate", "justify", "share", "initiate"},
			Criterion: "consistently and sincerely",
			Condition: "when demonstrating ethical, professional, or socially responsible behaviour",
		},
		{
			Name:      "Organization",
			Verbs:     []string{"integrate", "prioritize", "reconcile", "synthesize"},
			Criterion: "constructively",
			Condition: "when integrating, prioritising, or balancing multiple perspectives, values, or sources of information",
		},
		{
			Name:      "Characterization",
			Verbs:     []string{"uphold", "exemplify", "advocate", "practice"},
			Criterion: "ethically and with integrity",
			Condition: "throughout sustained academic, organisational, or professional practice",
		},
	},
	DomainPsychomotor: {
		{
			Name:      "Perception",
			Verbs:     []string{"detect", "observe", "distinguish", "identify"},
			Criterion: "accurately and attentively",
			Condition: "when identifying relevant cues, signals, data, or movement patterns during observation or demonstration",
		},
		{
			Name:      "Set",
			Verbs:     []string{"prepare", "position", "arrange", "display"},
			Criterion: "with readiness and precision",
			Condition: "when preparing to initiate a task, procedure, operation, or motor skill performance",
		},
		{
			Name:      "Guided Response",
			Verbs:     []string{"imitate", "reproduce", "follow", "trace"},
			Criterion: "under supervision and with control",
			Condition: "during structured practice or supervised execution of tasks, skills, or procedures",
		},
		{
			Name:      "Mechanism",
			Verbs:     []string{"operate", "perform", "execute", "assemble"},
			Criterion: "competently",
			Condition: "when performing learned procedures, operations, or techniques consistently",
		},
		{
			Name:      "Complex Overt Response",
			Verbs:     []string{"coordinate", "calibrate", "manipulate", "master"},
			Criterion: "efficiently and confidently",
			Condition: "when executing advanced or multi-step tasks requiring coordination, fluency, or sustained performance",
		},
		{
			Name:      "Adaptation",
			Verbs:     []string{"adapt", "modify", "revise", "adjust"},
			Criterion: "appropriately and safely",
			Condition: "when modifying actions, techniques, or workflows in response to new demands or conditions",
		},
		{
			Name:      "Origination",
			Verbs:     []string{"originate", "devise", "invent", "compose"},
			Criterion: "creatively and effectively",
			Condition: "when developing new strategies, techniques, patterns, or movement innovations",
		},
	},
}

// Stages returns the ordered Bloom stages of a taxonomy domain. The returned
// slice is a copy safe for mutation by callers.
func Stages(d TaxonomyDomain) []BloomStage {
	stages := bloomStages[d]
	out := make([]BloomStage, len(stages))
	for i, stage := range stages {
		out[i] = stage
		out[i].Verbs = append([]string(nil), stage.Verbs...)
	}
	return out
}

// FindStage locates a stage by name within a taxonomy domain. Name comparison
// is case-insensitive; the candidate verb list it yields is ordered and finite.
func FindStage(d TaxonomyDomain, name string) (BloomStage, bool) {
	for _, stage := range bloomStages[d] {
		if strings.EqualFold(stage.Name, name) {
			cp := stage
			cp.Verbs = append([]string(nil), stage.Verbs...)
			return cp, true
		}
	}
	return BloomStage{}, false
}

// StageVerbs returns the candidate verbs for a Bloom level, or an empty
// sequence when the level is unknown. Callers treat empty as "nothing
// selectable", not an error.
func StageVerbs(d TaxonomyDomain, name string) []string {
	stage, ok := FindStage(d, name)
	if !ok {
		return nil
	}
	return stage.Verbs
}
