package content

import (
	"fmt"
)

// Parse turns an enumerated file into a content item with its hash populated.
func Parse(file *File) (*Item, error) {
	var (
		meta Metadata
		body []byte
		err  error
	)

	switch file.Format {
	case FormatMarkdown:
		meta, body, err = splitFrontMatter(file.Raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file.Path, err)
		}
	case FormatHTML:
		var bodyStr string
		meta, bodyStr, err = ConvertHTML(file.Raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file.Path, err)
		}
		body = []byte(bodyStr)
	default:
		return nil, fmt.Errorf("parse %s: unsupported format %s", file.Path, file.Format)
	}

	item := &Item{
		Path:   file.Path,
		Format: file.Format,
		Body:   NormalizeBody(string(body)),
		Meta:   meta,
	}
	item.Hash = Fingerprint(item)
	return item, nil
}
