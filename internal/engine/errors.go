package engine

import (
	"errors"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
)

var (
	// ErrDuplicateName is returned when a point, timer or counter name is
	// already taken in its namespace. It is the registry's sentinel so
	// errors.Is matches at either layer.
	ErrDuplicateName = point.ErrDuplicateName

	// ErrStartCanceled is returned by Start when its context is already done.
	ErrStartCanceled = errors.New("engine start canceled")
)
