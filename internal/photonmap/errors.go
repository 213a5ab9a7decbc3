package photonmap

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLightType  = errors.New("unrecognized light type")
	ErrNoLights          = errors.New("config has no lights")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrBadRawHeader      = errors.New("bad raw radiance header")
	ErrDimensionMismatch = errors.New("radiance dimensions differ")
)

// errorf wraps a sentinel with a formatted detail.
func errorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
