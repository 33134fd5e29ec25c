package content

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// fingerprintVersion is baked into the digest so a future layout change
// re-publishes everything instead of silently colliding with old hashes.
const fingerprintVersion = "pressgang.fp.v1"

// Fingerprint computes the stable content hash for an item: sha256 over a
// canonical byte layout of its metadata (sorted by key) and normalized body.
// Two reads of semantically identical content yield the same digest on any
// machine; any edit to the body or a metadata field changes it.
func Fingerprint(item *Item) string {
	h := sha256.New()
	h.Write([]byte(fingerprintVersion))
	h.Write([]byte{0})

	keys := make([]string, 0, len(item.Meta))
	for k := range item.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(canonicalValue(item.Meta[k])))
		h.Write([]byte{0})
	}

	h.Write([]byte(NormalizeBody(item.Body)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// canonicalValue renders a metadata value deterministically. Arrays keep
// their order; everything else goes through %v which is stable for the
// scalar types yaml produces.
func canonicalValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = canonicalValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case []string:
		return "[" + strings.Join(val, ",") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + canonicalValue(val[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NormalizeBody strips formatting noise that is not a content edit:
// line-ending style and trailing whitespace. The result ends with exactly
// one newline (or is empty).
func NormalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	normalized := strings.Join(lines, "\n")
	normalized = strings.TrimRight(normalized, "\n")
	if normalized == "" {
		return ""
	}
	return normalized + "\n"
}
