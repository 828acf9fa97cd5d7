// SPDX-License-Identifier: EPL-2.0

package backend

import "errors"

var (
	// ErrChannelMismatch indicates a clip whose channel count differs from
	// the output's.
	ErrChannelMismatch = errors.New("clip channel count does not match output")

	// ErrEmptyClip indicates a clip with nothing to play.
	ErrEmptyClip = errors.New("clip has no frames")
)
