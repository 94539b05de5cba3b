package plugin

import "errors"

var (
	ErrUnknownPlugin = errors.New("plugin: no factory registered for name")
	ErrCreateFailed  = errors.New("plugin: factory failed to create plugin")
)
