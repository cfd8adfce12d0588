package scenario

import "errors"

// ErrScenarioFailed is returned by Run when at least one check fails.
var ErrScenarioFailed = errors.New("scenario failed")
