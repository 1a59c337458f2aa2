// Package form flattens nested payloads into the url-encoded shape the
// series edit endpoint expects: path segments joined with "-", list items
// addressed by index, e.g. event_set-initial=3, event_set-forms-0-title=...
package form

import (
	"fmt"
	"net/url"
	"strconv"
)

// Encode flattens a nested structure of maps, slices and scalars into
// url.Values. Supported node types are map[string]any, map[string]string,
// []map[string]string, []any, string and int.
func Encode(root map[string]any) url.Values {
	values := url.Values{}
	for key, val := range root {
		encodeNode(values, key, val)
	}
	return values
}

func encodeNode(values url.Values, prefix string, node any) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			encodeNode(values, prefix+"-"+key, val)
		}
	case map[string]string:
		for key, val := range v {
			values.Set(prefix+"-"+key, val)
		}
	case []map[string]string:
		for i, item := range v {
			encodeNode(values, prefix+"-"+strconv.Itoa(i), item)
		}
	case []any:
		for i, item := range v {
			encodeNode(values, prefix+"-"+strconv.Itoa(i), item)
		}
	case string:
		values.Set(prefix, v)
	case int:
		values.Set(prefix, strconv.Itoa(v))
	default:
		values.Set(prefix, fmt.Sprint(v))
	}
}

// EventSet builds the combined save payload for a series: a count of events
// under "initial" plus the ordered per-event field maps under "forms". All
// current events are submitted together, not a diff.
func EventSet(forms []map[string]string) url.Values {
	return Encode(map[string]any{
		"event_set": map[string]any{
			"initial": len(forms),
			"forms":   forms,
		},
	})
}
