// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrNoStream indicates that a type resolved to no playable stream:
	// it has no clips or the backend failed to open the chosen one.
	ErrNoStream = errors.New("no stream for type")

	// ErrVoiceLimit indicates a sound rejected by the Reject voice policy.
	ErrVoiceLimit = errors.New("voice limit reached")

	// ErrDisposed is returned by Play once the player has been disposed.
	ErrDisposed = errors.New("player disposed")

	// ErrInvalidSettings indicates a Settings field out of range.
	ErrInvalidSettings = errors.New("invalid settings")
)
