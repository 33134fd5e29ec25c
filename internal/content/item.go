package content

// Format identifies the on-disk markup of a source file.
type Format uint8

const (
	FormatMarkdown Format = iota
	FormatHTML
)

var formatNames = []string{
	"markdown",
	"html",
}

func (f Format) String() string {
	return formatNames[f]
}

// File is one enumerated source file, before parsing.
type File struct {
	Path   string // relative to the content dir, slash-separated
	Format Format
	Raw    []byte
}

// Item is one candidate post, built fresh each run. Only its Path and Hash
// are ever persisted.
type Item struct {
	Path   string
	Format Format
	Body   string
	Meta   Metadata
	Hash   string
}

// Metadata holds the published-result-affecting fields of a post
// (title, description, tags, ...). Values are scalars or arrays of scalars.
type Metadata map[string]any

// Title returns the title field, if present.
func (m Metadata) Title() string {
	s, _ := m["title"].(string)
	return s
}

// Tags returns the tags field normalized to a string slice.
func (m Metadata) Tags() []string {
	switch v := m["tags"].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
