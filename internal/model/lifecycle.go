package model

import (
	"errors"
	"fmt"
)

// Status is an item's lifecycle state.
type Status string

// Lifecycle states. Every item starts open; resolved items can be
// reopened, so no state is terminal.
const (
	StatusOpen     Status = "open"
	StatusClaimed  Status = "claimed"
	StatusResolved Status = "resolved"
)

// ValidStatus checks whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	return s == StatusOpen || s == StatusClaimed || s == StatusResolved
}

// Event is a lifecycle transition trigger.
type Event string

// Lifecycle events.
const (
	EventClaim     Event = "claim"
	EventUnclaim   Event = "unclaim"
	EventResolve   Event = "resolve"
	EventUnresolve Event = "unresolve"
)

// ErrInvalidTransition is returned when an event is applied to a state
// that has no edge for it. The item is left unchanged.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ErrOwnItem is returned when an owner tries to claim their own posting.
// It matches ErrInvalidTransition under errors.Is.
var ErrOwnItem = fmt.Errorf("%w: owner cannot claim their own item", ErrInvalidTransition)

// transitions maps each (state, event) pair to its successor state.
// Anything not listed here is rejected.
var transitions = map[Status]map[Event]Status{
	StatusOpen: {
		EventClaim:   StatusClaimed,
		EventResolve: StatusResolved,
	},
	StatusClaimed: {
		EventUnclaim: StatusOpen,
		EventResolve: StatusResolved,
	},
	StatusResolved: {
		EventUnresolve: StatusOpen,
	},
}

// Transition returns the successor state for applying event to current,
// or ErrInvalidTransition if no such edge exists.
func Transition(current Status, event Event) (Status, error) {
	next, ok := transitions[current][event]
	if !ok {
		return current, fmt.Errorf("%w: cannot %s a %s item", ErrInvalidTransition, event, current)
	}
	return next, nil
}

// Apply mutates the item according to event, keeping status and claimant
// in sync: the claimant is set exactly while the item is claimed and
// cleared on every other state. actorID identifies the claiming user for
// EventClaim and is ignored otherwise. On error the item is unchanged.
func (it *Item) Apply(event Event, actorID string) error {
	if event == EventClaim && actorID == it.OwnerID {
		return ErrOwnItem
	}

	next, err := Transition(it.Status, event)
	if err != nil {
		return err
	}

	it.Status = next
	if next == StatusClaimed {
		claimant := actorID
		it.ClaimantID = &claimant
	} else {
		it.ClaimantID = nil
	}
	return nil
}
