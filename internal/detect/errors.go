package detect

import "fmt"

// Error represents a failure inside a single detector
type Error struct {
	Detector string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("detector %s failed: %s: %v", e.Detector, e.Message, e.Cause)
	}
	return fmt.Sprintf("detector %s failed: %s", e.Detector, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
