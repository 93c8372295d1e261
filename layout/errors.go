// SPDX-License-Identifier: MIT

package layout

import "errors"

var (
	// ErrBadSection indicates a section with a negative dimension or empty name.
	ErrBadSection = errors.New("layout: invalid section")

	// ErrDuplicateSection indicates two sections sharing a name.
	ErrDuplicateSection = errors.New("layout: duplicate section name")

	// ErrUnknownSection indicates a lookup of a name the layout does not define.
	ErrUnknownSection = errors.New("layout: unknown section")

	// ErrShape indicates a part or state whose length disagrees with the layout.
	ErrShape = errors.New("layout: shape mismatch")
)
