package layered

import "strings"

// Flatten converts a nested map into a single-level map with dot-separated
// keys, so configuration trees parsed from a file can be loaded into a
// Stack with flat keys.
func Flatten(nested map[string]any) map[string]any {
	result := make(map[string]any)
	flattenInto(nested, "", result)
	return result
}

func flattenInto(data map[string]any, prefix string, result map[string]any) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := val.(map[string]any); ok {
			flattenInto(nested, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Unflatten converts a flat map with dot-separated keys back into a nested
// structure. Later keys overwrite earlier ones when paths collide.
func Unflatten(flat map[string]any) map[string]any {
	result := make(map[string]any)
	for path, val := range flat {
		setPath(result, path, val)
	}
	return result
}

// setPath sets a value in a nested map using a dot-separated path,
// creating intermediate maps as needed.
func setPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
