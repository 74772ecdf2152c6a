package catalog

// Category classifies a catalog entry. The set of values is closed.
type Category string

const (
	CategoryCore        Category = "core"
	CategoryFile        Category = "file"
	CategoryDevelopment Category = "development"
	CategorySearch      Category = "search"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCore,
	CategoryFile,
	CategoryDevelopment,
	CategorySearch,
}

var categoryLabels = map[Category]string{
	CategoryCore:        "Core Tools",
	CategoryFile:        "File Operations",
	CategoryDevelopment: "Development Tools",
	CategorySearch:      "Search Tools",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable name of the category, or the raw value
// for an unknown category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Parameter describes one declared input of a documented tool.
type Parameter struct {
	// Name is unique within the owning entry
	Name string `yaml:"name" json:"name"`

	// Type is a descriptive label, not a checked type
	Type string `yaml:"type" json:"type"`

	Required    bool   `yaml:"required" json:"required"`
	Description string `yaml:"description" json:"description"`

	// Example is optional; empty means none
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Entry documents one tool in the reference catalog.
// Entries are read-only once loaded.
type Entry struct {
	// Name uniquely identifies the entry within a catalog
	Name string `yaml:"name" json:"name"`

	Category    Category `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`

	// Parameters are kept in documentation display order
	Parameters []Parameter `yaml:"parameters" json:"parameters"`

	ReturnValue string   `yaml:"return_value" json:"return_value"`
	Usage       string   `yaml:"usage" json:"usage"`
	Limitations []string `yaml:"limitations" json:"limitations"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// RequiredCount returns the number of required parameters.
func (e Entry) RequiredCount() int {
	n := 0
	for _, p := range e.Parameters {
		if p.Required {
			n++
		}
	}
	return n
}
