package enums

import "fmt"

// Status tracks where a maintenance request sits in its lifecycle.
// Deployments that stored a boolean map false to PENDING and true to COMPLETED.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

var validStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCanceled,
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Status.
func (s Status) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsOpen reports whether the request has not reached a terminal state.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// ParseStatus converts raw input into a Status.
func ParseStatus(value string) (Status, error) {
	for _, candidate := range validStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", value)
}
