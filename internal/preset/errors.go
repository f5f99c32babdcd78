package preset

import "fmt"

// ConfigurationError reports an invalid option or option combination. It is
// always detected before any file is read or written.
type ConfigurationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration [%s]: %s", e.Field, e.Message)
}
