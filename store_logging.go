package persist

import "time"

// Store operations reported through StoreLogger.
const (
	OpLoad   = "load"
	OpWrite  = "write"
	OpRemove = "remove"
	OpFilter = "filter"
)

// StoreLogEvent describes one store operation for logging. It is the sink
// for failures that have no synchronous caller, such as an auto-triggered or
// deferred load.
type StoreLogEvent struct {
	Key      string
	Op       string
	Duration time.Duration
	Err      error
}

// StoreLogger records store events.
type StoreLogger interface {
	LogStore(StoreLogEvent)
}

// StoreLoggerFunc adapts a function to StoreLogger.
type StoreLoggerFunc func(StoreLogEvent)

// LogStore implements StoreLogger.
func (f StoreLoggerFunc) LogStore(event StoreLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopStoreLogger struct{}

func (noopStoreLogger) LogStore(StoreLogEvent) {}

func (s *Store[T]) log(op string, duration time.Duration, err error) {
	s.cfg.logger.LogStore(StoreLogEvent{
		Key:      s.key,
		Op:       op,
		Duration: duration,
		Err:      err,
	})
}
