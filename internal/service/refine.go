package service

import "stackslice/internal/types"

// refineMoments is the extension point for snapping model-suggested
// timestamps to the transcript's timed segments. Matching moment
// descriptions against segment text is not implemented; moments pass
// through unchanged.
func refineMoments(moments []types.Moment, segments []types.Segment) []types.Moment {
	_ = segments
	return moments
}
