package presence

import "errors"

var ErrActorOffline = errors.New("actor has no live connections")
