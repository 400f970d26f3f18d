package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey marks a required configuration key that is absent.
	ErrMissingKey = errors.New("missing required key")
	// ErrNoData is returned when the data source answered without any pairs payload.
	ErrNoData = errors.New("no data")
	// ErrCircuitOpen is returned while the data source circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrNotConfigured marks a delivery channel without credentials.
	ErrNotConfigured = errors.New("channel not configured")
)

// FetchError is a network or decode failure for a single query term.
// The scan skips the query and continues.
type FetchError struct {
	Query string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Query, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConfigError is a missing or invalid threshold or weight. It is the only
// error kind that aborts a run.
type ConfigError struct {
	Document string
	Key      string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config %s: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Document, e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DeliveryError is a notification failure.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver via %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// PersistenceError is a snapshot write failure for one target.
type PersistenceError struct {
	Target string
	Path   string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist to %s (%s): %v", e.Target, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsConfigError reports whether err carries a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
