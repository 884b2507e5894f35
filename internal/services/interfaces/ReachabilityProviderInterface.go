package interfaces

import "reviewreminder/internal/models"

// ReachabilityProvider pushes connectivity changes until the returned func is called.
type ReachabilityProvider interface {
	Subscribe(callback func(models.NetworkState)) (unsubscribe func())
}
