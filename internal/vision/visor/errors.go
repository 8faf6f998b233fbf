package visor

import "errors"

var (
	ErrVisorUnavailable = errors.New("visor service unavailable")
	ErrInvalidResponse  = errors.New("invalid response from visor")
	ErrBadBox           = errors.New("malformed face box from visor")
	ErrBadLandmarks     = errors.New("malformed landmark set from visor")
	ErrBadPose          = errors.New("malformed pose vectors from visor")
)
