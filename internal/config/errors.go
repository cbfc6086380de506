package config

import "fmt"

// ConfigurationError is fatal and stops the run before any suite executes
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error for %q: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErr(key string, err error) error {
	return &ConfigurationError{Key: key, Err: err}
}
