package reminder

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "pending":
		return StatusPending, nil
	case "fired":
		return StatusFired, nil
	case "canceled":
		return StatusCanceled, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

var (
	StatusUnknown  = Status{}
	StatusPending  = Status{v: "pending"}
	StatusFired    = Status{v: "fired"}
	StatusCanceled = Status{v: "canceled"}
)
