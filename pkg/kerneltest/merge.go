package kerneltest

import "reflect"

// mergeRecursive merges overlay into a copy of base. Maps merge key by key;
// any other collision accumulates both sides into a list, so
// {list: "a"} + {list: "b"} gives {list: ["a", "b"]}. A map colliding with a
// non-map is replaced by the overlay value. Typed slices and string-keyed
// maps are normalized to []any and map[string]any, so the result never
// shares memory with either input.
func mergeRecursive(base, overlay map[string]any) map[string]any {
	result := copyTree(base)
	for key, value := range overlay {
		value = copyValue(value)
		existing, ok := result[key]
		if !ok {
			result[key] = value
			continue
		}

		existingMap, existingIsMap := existing.(map[string]any)
		overlayMap, overlayIsMap := value.(map[string]any)
		switch {
		case existingIsMap && overlayIsMap:
			result[key] = mergeRecursive(existingMap, overlayMap)
		case existingIsMap || overlayIsMap:
			result[key] = value
		default:
			result[key] = append(asList(existing), asList(value)...)
		}
	}
	return result
}

// asList returns v as a fresh []any: slices contribute their elements, any
// other value becomes a one-element list.
func asList(v any) []any {
	switch list := v.(type) {
	case []any:
		return append([]any(nil), list...)
	case nil:
		return []any{nil}
	}

	if copied, ok := copyValue(v).([]any); ok {
		return copied
	}
	return []any{v}
}

func copyTree(tree map[string]any) map[string]any {
	if tree == nil {
		return make(map[string]any)
	}
	copied := make(map[string]any, len(tree))
	for key, value := range tree {
		copied[key] = copyValue(value)
	}
	return copied
}

// copyValue deep-copies v into the tree's canonical form: slices and arrays
// become []any and maps keyed by strings become map[string]any, recursively.
// Byte slices are cloned as is. Other values are returned as is.
func copyValue(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return copyTree(value)
	case []any:
		copied := make([]any, len(value))
		for i, item := range value {
			copied[i] = copyValue(item)
		}
		return copied
	case []byte:
		return append([]byte(nil), value...)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any(nil)
		}
		copied := make([]any, rv.Len())
		for i := range copied {
			copied[i] = copyValue(rv.Index(i).Interface())
		}
		return copied
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			copied := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				copied[iter.Key().String()] = copyValue(iter.Value().Interface())
			}
			return copied
		}
		copied := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			copied.SetMapIndex(iter.Key(), iter.Value())
		}
		return copied.Interface()
	default:
		return v
	}
}
