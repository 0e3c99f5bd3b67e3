package assembly

import "errors"

// Error kinds surfaced per element. A failed element never scatters into
// the global matrix: rotation and local integration complete fully before
// any global write. Malformed local-to-global maps are programmer errors
// and panic instead (see utils.DOK.AccumulateBlock).
var (
	// ErrDegenerateBasis means the radial and normal fields gave parallel
	// or near-zero vectors at a node, so no rotation basis exists there.
	ErrDegenerateBasis = errors.New("degenerate rotation basis")

	// ErrDegenerateElement means the integrator rejected the element
	// geometry (zero or negative measure).
	ErrDegenerateElement = errors.New("degenerate element")
)
