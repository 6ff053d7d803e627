// internal/models/status.go
package models

// ApplicationStatus enumerates the lifecycle states of an application.
type ApplicationStatus string

const (
	StatusPending           ApplicationStatus = "pending"
	StatusAccepted          ApplicationStatus = "accepted"
	StatusWaiting           ApplicationStatus = "waiting"
	StatusRejected          ApplicationStatus = "rejected"
	StatusDeclinedByStudent ApplicationStatus = "declined_by_student"
)

// IsValid reports whether s is one of the enumerated statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusWaiting, StatusRejected, StatusDeclinedByStudent:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
// accepted is not terminal: it can still be declined by the student or
// superseded by the final-admission cascade.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusDeclinedByStudent
}
