package remote

import "fmt"

// ServiceError is returned when the endpoint answers with a non-success
// status. Message carries the service's optional "error" field.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("service responded with status %d: %s", e.StatusCode, e.Message)
}

// TransportError covers everything that kept a usable answer from arriving:
// connection failures and bodies that could not be understood.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
