package synth

// assessmentCatalog is the static outcome→assessment-method lookup table.
// Outcomes without an entry contribute no suggestions.
var assessmentCatalog = map[string][]string{
	"PLO1":  {"Written examination", "Quiz", "Assignment"},
	"PLO2":  {"Problem-based assignment", "Written examination", "Project report"},
	"PLO3":  {"Laboratory report", "Practical test", "Demonstration"},
	"PLO4":  {"Group project", "Peer assessment", "Presentation"},
	"PLO5":  {"Oral presentation", "Written report", "Viva"},
	"PLO6":  {"Practical test", "Online quiz", "Data analysis exercise"},
	"PLO7":  {"Capstone project", "Portfolio", "Leadership task"},
	"PLO8":  {"Business plan", "Reflective journal", "Case study"},
	"PLO9":  {"Case study", "Reflective journal", "Observation rubric"},
	"PLO10": {"Portfolio", "Capstone project"},
	"PLO11": {"Industrial training report", "Supervisor evaluation"},
	"PLO12": {"Final year project", "Dissertation"},
}

// maxSuggestions caps suggestion lists to keep them scannable.
const maxSuggestions = 6

// SuggestAssessments returns the deduplicated union of the static lookup over
// the selected outcomes, preserving first-seen order, capped at
// maxSuggestions entries.
func SuggestAssessments(outcomeIDs []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, id := range outcomeIDs {
		for _, method := range assessmentCatalog[id] {
			if _, dup := seen[method]; dup {
				continue
			}
			seen[method] = struct{}{}
			out = append(out, method)
			if len(out) == maxSuggestions {
				return out
			}
		}
	}
	return out
}
