package pipeline

import "fmt"

// ReportError represents a recovered failure while analyzing one report
type ReportError struct {
	ReportID int
	Message  string
	Cause    error
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report %d: %s: %v", e.ReportID, e.Message, e.Cause)
	}
	return fmt.Sprintf("report %d: %s", e.ReportID, e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}
