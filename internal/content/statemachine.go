package content

import (
	"github.com/goomento/pagebuilder/internal/domain"
)

// SaveAction is the outcome of running a save request through the state
// machine.
type SaveAction int

const (
	// ActionNoop means the payload matches the canonical row exactly; the
	// save must not touch storage.
	ActionNoop SaveAction = iota
	// ActionCreate persists a first canonical row; no snapshot exists to
	// take.
	ActionCreate
	// ActionSnapshotOnly records an autosave/revision row and leaves the
	// canonical row untouched.
	ActionSnapshotOnly
	// ActionOverwrite snapshots the current canonical state and then
	// overwrites it with the incoming payload.
	ActionOverwrite
)

func (a SaveAction) String() string {
	switch a {
	case ActionNoop:
		return "noop"
	case ActionCreate:
		return "create"
	case ActionSnapshotOnly:
		return "snapshot"
	case ActionOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// StateMachine encodes the legal lifecycle moves for canonical content.
type StateMachine struct{}

// Decide classifies a save. current is nil when the aggregate has never been
// persisted; requested is the normalized incoming status; incomingHash is the
// fingerprint of the incoming elements and settings.
func (StateMachine) Decide(current *Content, requested domain.Status, incomingHash string) (SaveAction, error) {
	if !domain.IsValidStatus(requested) {
		return ActionNoop, ErrStatusInvalid
	}

	if current == nil {
		if domain.IsSnapshotStatus(requested) {
			// A snapshot needs an owner row to attach to.
			return ActionNoop, ErrStatusTransition
		}
		return ActionCreate, nil
	}

	if domain.IsSnapshotStatus(requested) {
		return ActionSnapshotOnly, nil
	}

	if !domain.CanTransition(current.Status, requested) {
		return ActionNoop, ErrStatusTransition
	}

	if current.Status == requested && current.RevisionHash() == incomingHash {
		return ActionNoop, nil
	}

	return ActionOverwrite, nil
}
