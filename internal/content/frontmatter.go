package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontMatterFence = []byte("---")

// splitFrontMatter extracts a leading `---` fenced YAML block. Files without
// a front matter block are valid; they just carry no metadata.
func splitFrontMatter(raw []byte) (Metadata, []byte, error) {
	trimmed := bytes.TrimLeft(raw, "\xef\xbb\xbf") // strip UTF-8 BOM
	if !bytes.HasPrefix(trimmed, frontMatterFence) {
		return Metadata{}, raw, nil
	}

	rest := trimmed[len(frontMatterFence):]
	if len(rest) > 0 && rest[0] == '\r' {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != '\n' {
		// a line starting with --- but no fence, e.g. a markdown hrule
		return Metadata{}, raw, nil
	}
	rest = rest[1:]

	end := bytes.Index(rest, append([]byte("\n"), frontMatterFence...))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter block")
	}

	var meta Metadata
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}
	if meta == nil {
		meta = Metadata{}
	}

	body := rest[end+1+len(frontMatterFence):]
	body = bytes.TrimLeft(body, "\r\n")
	return meta, body, nil
}
