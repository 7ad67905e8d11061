package agent

import "fmt"

// TransportError reports a non-success initial response from the engine. Its
// message is shown verbatim in the output area, so it matches the wording the
// dashboard has always used.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Server error: %d", e.Status)
}
