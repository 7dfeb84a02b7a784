package persist

import "fmt"

// LoadError captures an adapter read failure during Init.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("persist: load key=%q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WriteError captures an adapter write-through failure. The in-memory value
// is already updated when it is returned; callers own the retry decision.
type WriteError struct {
	Key string
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("persist: %s key=%q: %v", describeOp(e.Op), e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeOp(op string) string {
	if op == "" {
		return "write"
	}
	return op
}
