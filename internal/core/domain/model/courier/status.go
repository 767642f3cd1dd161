package courier

import (
	"fmt"
	"slices"

	"dispatch/internal/pkg/errs"
)

// Status is the working state of a courier.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusBusy
	StatusOnBreak
	StatusOffDuty
	StatusInactive
)

var statusStrings = map[Status]string{
	StatusAvailable: "AVAILABLE",
	StatusBusy:      "BUSY",
	StatusOnBreak:   "ON_BREAK",
	StatusOffDuty:   "OFF_DUTY",
	StatusInactive:  "INACTIVE",
}

// statusTransitions lists, per status, the statuses a courier may move to.
var statusTransitions = map[Status][]Status{
	StatusAvailable: {StatusBusy, StatusOnBreak, StatusOffDuty, StatusInactive},
	StatusBusy:      {StatusAvailable, StatusOnBreak, StatusOffDuty, StatusInactive},
	StatusOnBreak:   {StatusAvailable, StatusOffDuty, StatusInactive},
	StatusOffDuty:   {StatusAvailable, StatusInactive},
	StatusInactive:  {StatusAvailable},
}

func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a courier status", s))
}

func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAvailable reports whether new deliveries may be offered.
func (s Status) IsAvailable() bool {
	return s == StatusAvailable
}

// IsActive reports whether the courier is on shift.
func (s Status) IsActive() bool {
	return s == StatusAvailable || s == StatusBusy || s == StatusOnBreak
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(statusTransitions[s], next)
}
