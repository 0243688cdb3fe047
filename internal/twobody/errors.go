package twobody

import "errors"

var (
	// ErrSingularSeparation indicates the two bodies are coincident, or so close
	// that 1/r³ is not representable.
	ErrSingularSeparation = errors.New("twobody: singular separation (bodies coincide)")

	// ErrInvalidParams indicates a non-positive or non-finite physical constant.
	ErrInvalidParams = errors.New("twobody: invalid physical parameters")
)
