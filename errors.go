package fastrie

import "errors"

// ErrAlreadyBuilt is returned by Builder.Prebuild when called more than once
// on the same builder.
var ErrAlreadyBuilt = errors.New("fastrie: builder already built")

// ErrInvalidWidth is returned by NewBuilder when width is outside [1, 8].
var ErrInvalidWidth = errors.New("fastrie: index width must be between 1 and 8 bytes")

// ErrIndexOverflow is returned by Builder.Prebuild when a node or value
// count requires an offset that does not fit in the configured index width.
var ErrIndexOverflow = errors.New("fastrie: index does not fit in configured width")
