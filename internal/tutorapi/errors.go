package tutorapi

import "fmt"

// invalidFormatMessage is reported when a reply body cannot be used.
const invalidFormatMessage = "invalid response format"

// TransportError indicates the chat request failed at the network or HTTP
// level. StatusCode is 0 when no response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("tutor returned status %d: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError indicates a successful reply that failed strict shape
// validation.
type FormatError struct {
	Reply any
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", invalidFormatMessage, e.Err)
	}
	return invalidFormatMessage
}

// Message is the user-facing description of the failure.
func (e *FormatError) Message() string {
	return invalidFormatMessage
}

func (e *FormatError) Unwrap() error { return e.Err }
