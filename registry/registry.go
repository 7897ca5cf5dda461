// Package registry tracks document-store endpoints so clients can discover
// where to dial instead of hardcoding addresses.
package registry

import "context"

// StoreInstance describes one reachable store endpoint.
type StoreInstance struct {
	Addr    string
	Weight  int // relative capacity, consumed by the balancer
	Version string
}

// Registry is the discovery interface. Register/Deregister are for the
// process fronting the store; Discover/Watch are for clients. Watch stops
// and closes its channel when ctx is cancelled.
type Registry interface {
	Register(service string, instance StoreInstance, ttl int64) error
	Deregister(service string, addr string) error
	Discover(service string) ([]StoreInstance, error)
	Watch(ctx context.Context, service string) <-chan []StoreInstance
}
