package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrInvalidSize indicates a request for zero or negative units.
	ErrInvalidSize = errors.New("alloc: size must be positive")

	// ErrInvalidCapacity indicates an allocator was created with a non-positive capacity.
	ErrInvalidCapacity = errors.New("alloc: capacity must be positive")

	// ErrBadAddress indicates a free of an address that is not the start of any block.
	ErrBadAddress = errors.New("alloc: no block starts at address")

	// ErrNotAllocated indicates a free of a block that is already free.
	ErrNotAllocated = errors.New("alloc: block is not allocated")

	// ErrUnknownStrategy indicates a Strategy value outside the supported set.
	ErrUnknownStrategy = errors.New("alloc: unknown strategy")
)
