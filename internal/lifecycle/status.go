package lifecycle

import "tourmarket/internal/apperr"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusArchived Status = "archived"
)

// Kind names an approvable resource type.
type Kind string

const (
	KindUser    Kind = "user"
	KindPackage Kind = "package"
)

var kindStatuses = map[Kind]map[Status]bool{
	KindUser:    {StatusPending: true, StatusApproved: true, StatusRejected: true},
	KindPackage: {StatusPending: true, StatusApproved: true, StatusRejected: true, StatusArchived: true},
}

// Resource is the display name used in error messages.
func (k Kind) Resource() string {
	switch k {
	case KindUser:
		return "User"
	case KindPackage:
		return "Package"
	default:
		return string(k)
	}
}

// Allows reports whether s is a status resources of kind k can hold.
func (k Kind) Allows(s Status) bool {
	return kindStatuses[k][s]
}

func ParseStatus(k Kind, s string) (Status, error) {
	st := Status(s)
	if !k.Allows(st) {
		return "", apperr.Validation("invalid "+string(k)+" status: "+s, map[string]string{"status": "oneof"})
	}
	return st, nil
}

type Transition string

const (
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
)

func (t Transition) Target() Status {
	switch t {
	case TransitionApprove:
		return StatusApproved
	case TransitionReject:
		return StatusRejected
	default:
		return ""
	}
}
