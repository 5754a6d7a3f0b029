package reminder

import (
	"errors"
	"fmt"
	"remindbot/internal/core/domain/datetime"
	"time"
)

var (
	ErrInvalidFireSpec = errors.New("invalid fire spec")
	ErrParseKind       = errors.New("invalid fire spec kind")
)

type Kind struct {
	v string
}

func (k Kind) String() string {
	return k.v
}

var (
	KindUnknown = Kind{}
	KindOneShot = Kind{v: "one_shot"}
	KindDaily   = Kind{v: "daily"}
)

func ParseKind(value string) (Kind, error) {
	switch value {
	case "one_shot":
		return KindOneShot, nil
	case "daily":
		return KindDaily, nil
	default:
		return KindUnknown, ErrParseKind
	}
}

// FireSpec is the tagged variant describing when a reminder fires: either
// once at an absolute instant, or every day at a local time of day.
type FireSpec struct {
	kind Kind
	at   time.Time
	tod  datetime.TimeOfDay
}

func NewOneShot(at time.Time) FireSpec {
	return FireSpec{kind: KindOneShot, at: at}
}

func NewDaily(tod datetime.TimeOfDay) FireSpec {
	return FireSpec{kind: KindDaily, tod: tod}
}

func (s FireSpec) Kind() Kind {
	return s.kind
}

func (s FireSpec) IsRecurring() bool {
	return s.kind == KindDaily
}

// At returns the absolute instant of a one-shot spec, the zero time otherwise.
func (s FireSpec) At() time.Time {
	return s.at
}

// TimeOfDay returns the daily fire time, the zero value for one-shot specs.
func (s FireSpec) TimeOfDay() datetime.TimeOfDay {
	return s.tod
}

func (s FireSpec) Validate() error {
	switch s.kind {
	case KindOneShot:
		if s.at.IsZero() {
			return ErrInvalidFireSpec
		}
	case KindDaily:
		if err := s.tod.Validate(); err != nil {
			return ErrInvalidFireSpec
		}
	default:
		return ErrInvalidFireSpec
	}
	return nil
}

// NextFireAt computes the next occurrence strictly after now. For a one-shot
// spec this is its instant regardless of now; elapsed one-shots are the
// caller's concern (fire-immediately policy on reload).
func (s FireSpec) NextFireAt(now time.Time) time.Time {
	switch s.kind {
	case KindOneShot:
		return s.at
	case KindDaily:
		return s.tod.NextAfter(now)
	default:
		panic(fmt.Sprintf("unexpected fire spec kind: %v", s.kind))
	}
}

func (s FireSpec) String() string {
	switch s.kind {
	case KindOneShot:
		return fmt.Sprintf("at %s", s.at.Format("2006-01-02 15:04"))
	case KindDaily:
		return fmt.Sprintf("every day at %s", s.tod)
	default:
		return "unknown"
	}
}
