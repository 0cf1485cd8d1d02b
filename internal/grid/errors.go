package grid

import "errors"

// Sentinel errors. They are always wrapped with context at the failure site;
// test with errors.Is.
var (
	// ErrOutOfBounds indicates a view constructed with a fixed coordinate or
	// range outside its source's bounds.
	ErrOutOfBounds = errors.New("grid: out of bounds")

	// ErrUnsupported indicates a model that cannot step, report a size or back up.
	ErrUnsupported = errors.New("grid: unsupported operation")

	// ErrIrregularShape indicates a dense grid built from a ragged array.
	ErrIrregularShape = errors.New("grid: irregular shape")

	// ErrEmptyShape indicates a dense grid with a zero extent along some axis.
	ErrEmptyShape = errors.New("grid: empty shape")

	// ErrIllegalArgument indicates an argument or computed bound outside the
	// representable range.
	ErrIllegalArgument = errors.New("grid: illegal argument")
)
