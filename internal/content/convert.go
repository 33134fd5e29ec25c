package content

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var (
	reTitleTag  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	reFirstH1   = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	reMetaTag   = regexp.MustCompile(`(?is)<meta\s+[^>]*>`)
	reAttrName  = regexp.MustCompile(`(?i)name\s*=\s*["']([^"']+)["']`)
	reAttrValue = regexp.MustCompile(`(?i)content\s*=\s*["']([^"']*)["']`)
	reStripTags = regexp.MustCompile(`(?s)<[^>]*>`)
)

// converter is stateless and safe for concurrent use.
var converter = md.NewConverter("", true, nil)

// ConvertHTML turns a rich-markup document into a markdown body plus
// metadata extracted from the document head (<title>, meta description,
// meta keywords). A missing <title> falls back to the first <h1>.
func ConvertHTML(raw []byte) (Metadata, string, error) {
	doc := string(raw)

	body, err := converter.ConvertString(doc)
	if err != nil {
		return nil, "", fmt.Errorf("convert html: %w", err)
	}

	meta := Metadata{}
	if title := extractTitle(doc); title != "" {
		meta["title"] = title
	}
	for name, value := range extractMetaTags(doc) {
		switch name {
		case "description":
			meta["description"] = value
		case "keywords":
			tags := splitKeywords(value)
			if len(tags) > 0 {
				meta["tags"] = tags
			}
		}
	}

	return meta, body, nil
}

func extractTitle(doc string) string {
	if m := reTitleTag.FindStringSubmatch(doc); m != nil {
		return cleanText(m[1])
	}
	if m := reFirstH1.FindStringSubmatch(doc); m != nil {
		return cleanText(m[1])
	}
	return ""
}

func extractMetaTags(doc string) map[string]string {
	out := make(map[string]string)
	for _, tag := range reMetaTag.FindAllString(doc, -1) {
		name := reAttrName.FindStringSubmatch(tag)
		value := reAttrValue.FindStringSubmatch(tag)
		if name == nil || value == nil {
			continue
		}
		out[strings.ToLower(name[1])] = cleanText(value[1])
	}
	return out
}

func splitKeywords(value string) []string {
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func cleanText(s string) string {
	s = reStripTags.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
