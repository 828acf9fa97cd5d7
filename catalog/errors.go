// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	// ErrUnknownFormat indicates no decoder is registered for a file format.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrUnknownType indicates a type name missing from the catalog.
	ErrUnknownType = errors.New("unknown type")

	// ErrEmptyClip indicates a file decoded to no samples.
	ErrEmptyClip = errors.New("clip has no samples")

	// ErrInvalidManifest indicates a manifest entry that cannot be used.
	ErrInvalidManifest = errors.New("invalid manifest")
)
