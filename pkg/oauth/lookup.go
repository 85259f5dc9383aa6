package oauth

import "strings"

// LookupPath resolves a dotted key path such as "integration.user.id"
// against a decoded JSON document.
//
// Resolution stops at the first segment that is missing or whose parent is
// not an object, reporting the value as absent. A null leaf is absent too.
func LookupPath(doc map[string]any, path string) (any, bool) {
	if doc == nil || path == "" {
		return nil, false
	}

	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}

	if cur == nil {
		return nil, false
	}
	return cur, true
}

// lookupString is LookupPath narrowed to string leaves.
func lookupString(doc map[string]any, path string) (string, bool) {
	v, ok := LookupPath(doc, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// cloneDocument deep-copies nested objects and arrays so that a wrapped
// document cannot be mutated through the caller's original reference.
func cloneDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneDocument(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
