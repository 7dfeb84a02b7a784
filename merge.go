package persist

import "reflect"

// overlay deep-merges part over base across JSON-shaped values. Maps merge
// recursively with part's leaves winning; slices and scalars from part
// replace wholesale; a shape mismatch on either side resolves as a full
// replacement by part, never an error.
func overlay(base, part any) any {
	partMap, partIsMap := part.(map[string]any)
	baseMap, baseIsMap := base.(map[string]any)
	if !partIsMap || !baseIsMap {
		return part
	}

	merged := make(map[string]any, len(baseMap)+len(partMap))
	for key, value := range baseMap {
		merged[key] = value
	}
	for key, value := range partMap {
		if existing, ok := merged[key]; ok {
			merged[key] = overlay(existing, value)
			continue
		}
		merged[key] = value
	}
	return merged
}

// diffValues captures the effective partial of after relative to before:
// the smallest overlay that, merged over before, yields after. Keys removed
// from a draft are not expressible as an overlay and are ignored.
func diffValues(before, after any) (any, bool) {
	beforeMap, beforeIsMap := before.(map[string]any)
	afterMap, afterIsMap := after.(map[string]any)
	if !beforeIsMap || !afterIsMap {
		if reflect.DeepEqual(before, after) {
			return nil, false
		}
		return after, true
	}

	partial := map[string]any{}
	for key, afterValue := range afterMap {
		beforeValue, ok := beforeMap[key]
		if !ok {
			partial[key] = afterValue
			continue
		}
		if changed, isChanged := diffValues(beforeValue, afterValue); isChanged {
			partial[key] = changed
		}
	}
	if len(partial) == 0 {
		return nil, false
	}
	return partial, true
}

// mergeInto deep-merges loaded over current, with loaded's leaves winning.
// Used by forced reloads so in-memory keys the backing store does not carry
// are preserved.
func mergeInto[T any](current, loaded T) (T, error) {
	var zero T
	base, err := snapshotOf(current)
	if err != nil {
		return zero, err
	}
	part, err := snapshotOf(loaded)
	if err != nil {
		return zero, err
	}
	return decodeAs[T](overlay(base, part))
}
