package point

import "errors"

// Sentinel kinds for point registry errors.
var (
	ErrDuplicateName = errors.New("duplicate point name")
	ErrUnknownPoint  = errors.New("unknown point")
	ErrWrongKind     = errors.New("wrong point kind")
	ErrInvalidKind   = errors.New("invalid point kind")
)
