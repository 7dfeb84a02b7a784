package persist

import (
	"bytes"
	"encoding/json"
)

// Snapshot returns a detached plain structural copy of the current value:
// maps, slices, and scalars as encoding/json would decode them. It shares
// nothing with the live value, so it is safe to hand to serializers and
// change-detection comparisons.
func (s *Store[T]) Snapshot() (any, error) {
	return snapshotOf(s.cell.Get())
}

// snapshotOf round-trips value through JSON into its plain structural form.
func snapshotOf(value any) (any, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAs hydrates a plain structural value back into T.
func decodeAs[T any](value any) (T, error) {
	var out T
	payload, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
