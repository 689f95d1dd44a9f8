package domain

// IsSnapshotStatus reports whether the status identifies a snapshot row
// rather than a canonical one. Snapshot saves never overwrite the canonical
// content.
func IsSnapshotStatus(status Status) bool {
	return status == StatusAutosave || status == StatusRevision
}

// CanTransition reports whether a canonical content row may move from one
// status to another. Pending and published cycle freely between each other;
// any state may spin off an autosave or revision capture. There is no
// terminal state: only deletion ends a content lifecycle.
func CanTransition(from, to Status) bool {
	if !IsValidStatus(to) {
		return false
	}
	if IsSnapshotStatus(to) {
		return true
	}
	switch from {
	case StatusPending, StatusPublished, "":
		return to == StatusPending || to == StatusPublished
	default:
		// Snapshot rows keep their status; promotion back to canonical
		// happens by saving the canonical row, not by mutating a snapshot.
		return false
	}
}

// MirrorStatus returns the status recorded on a revision that snapshots a
// canonical row. The previous canonical status is mirrored so history shows
// what the content looked like when it was current; anything unknown
// collapses to the generic revision marker.
func MirrorStatus(previous Status) Status {
	switch previous {
	case StatusPending, StatusPublished:
		return previous
	default:
		return StatusRevision
	}
}
