// Package state defines the application status machine. Transitions are an
// explicit table keyed by (current status, action, score band); anything
// outside the table is a policy violation, never a silent no-op.
package state

import (
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/models"
)

// Action is a request to move an application to a new status.
type Action string

const (
	// Reviewer actions on a pending application.
	ActionAccept   Action = "accept"
	ActionWaitlist Action = "waitlist"
	ActionReject   Action = "reject"

	// ActionDecline is the candidate turning down an accepted offer.
	ActionDecline Action = "decline"

	// ActionCascadeDecline marks a non-chosen acceptance during
	// final-admission resolution.
	ActionCascadeDecline Action = "cascade_decline"

	// ActionPromote moves the oldest waiting application into the slot
	// vacated by a decline.
	ActionPromote Action = "promote"
)

// ScoreBand buckets the institution-review score for transition policy.
type ScoreBand int

const (
	BandBelow    ScoreBand = iota // score < 40
	BandWaitlist                  // 40 <= score < 60
	BandAdmit                     // score >= 60
)

// Thresholds on the 0-100 institution-review score.
const (
	AdmitThreshold    = 60
	WaitlistThreshold = 40
)

// BandFor buckets a review score using the given thresholds. Pass zero
// values to use the defaults.
func BandFor(score, admitThreshold, waitlistThreshold int) ScoreBand {
	if admitThreshold <= 0 {
		admitThreshold = AdmitThreshold
	}
	if waitlistThreshold <= 0 {
		waitlistThreshold = WaitlistThreshold
	}
	switch {
	case score >= admitThreshold:
		return BandAdmit
	case score >= waitlistThreshold:
		return BandWaitlist
	default:
		return BandBelow
	}
}

type transitionKey struct {
	from   models.ApplicationStatus
	action Action
}

type transitionRule struct {
	to models.ApplicationStatus

	// requiredBand, when set, is the only score band the transition is
	// legal in.
	requiredBand *ScoreBand
}

func bandPtr(b ScoreBand) *ScoreBand { return &b }

var transitions = map[transitionKey]transitionRule{
	{models.StatusPending, ActionAccept}:   {to: models.StatusAccepted, requiredBand: bandPtr(BandAdmit)},
	{models.StatusPending, ActionWaitlist}: {to: models.StatusWaiting, requiredBand: bandPtr(BandWaitlist)},
	{models.StatusPending, ActionReject}:   {to: models.StatusRejected},

	{models.StatusAccepted, ActionDecline}:        {to: models.StatusRejected},
	{models.StatusAccepted, ActionCascadeDecline}: {to: models.StatusDeclinedByStudent},

	{models.StatusWaiting, ActionPromote}: {to: models.StatusAccepted},
	{models.StatusWaiting, ActionReject}:  {to: models.StatusRejected},
}

// Next resolves the status an application moves to when action is applied
// in the given score band. Illegal combinations return a POLICY_VIOLATION.
func Next(current models.ApplicationStatus, action Action, band ScoreBand) (models.ApplicationStatus, error) {
	rule, ok := transitions[transitionKey{current, action}]
	if !ok {
		return "", errors.NewPolicyViolationError(
			fmt.Sprintf("no %s transition from status %q", action, current))
	}
	if rule.requiredBand != nil && band != *rule.requiredBand {
		return "", errors.NewPolicyViolationError(
			fmt.Sprintf("%s from %q not permitted in score band %d", action, current, band))
	}
	return rule.to, nil
}

// ActionForStatus maps a requested target status on a pending application
// to the reviewer action that produces it.
func ActionForStatus(target models.ApplicationStatus) (Action, error) {
	switch target {
	case models.StatusAccepted:
		return ActionAccept, nil
	case models.StatusWaiting:
		return ActionWaitlist, nil
	case models.StatusRejected:
		return ActionReject, nil
	default:
		return "", errors.NewPolicyViolationError(
			fmt.Sprintf("status %q is not a reviewer decision", target))
	}
}
