package content

import (
	"slices"
	"strings"
)

// Addressing is how items of a collection are located.
type Addressing int

const (
	// ByID collections locate items by their id field, falling back to index.
	ByID Addressing = iota
	// ByIndex collections locate items by position only.
	ByIndex
	// Singleton collections hold one object.
	Singleton
)

func (a Addressing) String() string {
	switch a {
	case ByID:
		return "by_id"
	case ByIndex:
		return "by_index"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Schema describes one content collection.
type Schema struct {
	Name       string
	Addressing Addressing
	Required   []string
	// Fallback is the id used when neither id nor title yields one.
	Fallback string
}

// Resume is the singleton collection name.
const Resume = "resume"

var schemas = []Schema{
	{Name: "projects", Addressing: ByID, Required: []string{"title", "date"}, Fallback: "project"},
	{Name: "articles", Addressing: ByID, Required: []string{"title", "excerpt", "content", "date"}, Fallback: "article"},
	{Name: "experiences", Addressing: ByIndex, Required: []string{"title", "company", "date"}},
	{Name: "studies", Addressing: ByIndex, Required: []string{"title", "date"}},
	{Name: Resume, Addressing: Singleton},
}

// Lookup returns the schema for name.
func Lookup(name string) (Schema, error) {
	i := slices.IndexFunc(schemas, func(s Schema) bool { return s.Name == name })
	if i < 0 {
		return Schema{}, ErrUnknownCollection
	}
	return schemas[i], nil
}

// Names lists every collection in registry order.
func Names() []string {
	out := make([]string, len(schemas))
	for i, s := range schemas {
		out[i] = s.Name
	}
	return out
}

// Validate checks that every required field is present and non-blank.
func (s Schema) Validate(it Item) error {
	var missing []string
	for _, f := range s.Required {
		if !it.present(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return invalidf("%s: missing required field(s): %s", s.Name, strings.Join(missing, ", "))
	}
	return nil
}
