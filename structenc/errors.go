package structenc

import "errors"

var (
	// ErrUnknownSubEncoder is returned when ExtractSufficientCondition is
	// asked for a root node that has no attached SubEncoder.
	ErrUnknownSubEncoder = errors.New("structenc: no sub-encoder attached at this root")
	// ErrFrameNotApplicable names frame-0 (previous-frame) reasoning on a
	// network that has no flip-flops. Nothing in this package returns it;
	// a frame-0 request on such a network is encoded like any other.
	ErrFrameNotApplicable = errors.New("structenc: previous frame is not applicable; network has no previous state")
)
