package input

import "errors"

var (
	ErrUnsupportedPlatform = errors.New("input hooks not supported on this platform")
	ErrHookInstall         = errors.New("failed to install input hook")
	ErrAlreadyInstalled    = errors.New("input hooks already installed")
	ErrUnknownButton       = errors.New("unknown mouse button")
)
