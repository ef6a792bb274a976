package mapping

import "clogen/pkg/domain"

// attributeCatalog is the static institutional attribute (IEG) catalogue.
// Mapping documents reference these ids; unknown ids resolve to the unset
// marker rather than failing.
var attributeCatalog = []domain.Attribute{
	{ID: "IEG1", Label: "Knowledge and Understanding"},
	{ID: "IEG2", Label: "Cognitive Skills"},
	{ID: "IEG3", Label: "Practical and Functional Skills"},
	{ID: "IEG4", Label: "Interpersonal and Teamwork Skills"},
	{ID: "IEG5", Label: "Communication Skills"},
	{ID: "IEG6", Label: "Digital and Numeracy Skills"},
	{ID: "IEG7", Label: "Leadership, Autonomy and Responsibility"},
	{ID: "IEG8", Label: "Personal and Entrepreneurial Skills"},
	{ID: "IEG9", Label: "Ethics and Professionalism"},
}

// Attributes returns the static attribute catalogue in order.
func Attributes() []domain.Attribute {
	return append([]domain.Attribute(nil), attributeCatalog...)
}

// AttributeLabel resolves an attribute id to its catalogue label.
func AttributeLabel(id string) (string, bool) {
	for _, attr := range attributeCatalog {
		if attr.ID == id {
			return attr.Label, true
		}
	}
	return "", false
}
