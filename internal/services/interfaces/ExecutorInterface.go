package interfaces

import "time"

// Executor runs work on the context it owns (worker queue, UI loop).
type Executor interface {
	Dispatch(fn func())
}

type Clock interface {
	Now() time.Time
}
