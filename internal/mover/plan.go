package mover

// Mode describes which of the two resources a pair mutates.
type Mode int

const (
	// ModeDirect renames on disk and updates the index.
	ModeDirect Mode = iota

	// ModeDirRename renames on disk only. The directory itself is never
	// an index entry; its children travel as separate ModeIndexOnly
	// pairs.
	ModeDirRename

	// ModeIndexOnly updates the index only. The disk move already
	// happened when the ancestor directory was renamed.
	ModeIndexOnly
)

// String returns a short human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeDirRename:
		return "dir-rename"
	case ModeIndexOnly:
		return "index-only"
	default:
		return "unknown"
	}
}

// Pair is a single source-to-destination move. Paths are clean,
// slash-separated, and relative to the working-tree root.
type Pair struct {
	Source string
	Dest   string
	Mode   Mode
}

// Plan is the validated, expanded, ordered sequence of pairs produced by
// the Validator and consumed by the Executor.
//
// Invariants on a returned plan: no two pairs share a destination, every
// ModeDirect/ModeIndexOnly source is tracked, and every destination
// either does not exist or sits in the Overwritten set.
type Plan struct {
	Pairs []Pair

	// Overwritten records destinations that exist as plain files and
	// were authorized to be replaced under force. The executor
	// classifies them as changed rather than added.
	Overwritten map[string]bool
}
