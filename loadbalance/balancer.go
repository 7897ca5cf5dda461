// Package loadbalance picks one store endpoint from a discovered set.
//
// Two strategies:
//   - RoundRobin:      equal-capacity endpoints
//   - WeightedRandom:  endpoints with different capacity (Weight field)
//
// There is intentionally no key-affinity strategy: commands are never routed
// by key here.
package loadbalance

import "jsonkv/registry"

// Balancer selects a target endpoint. Pick is called per dial and must be
// goroutine-safe.
type Balancer interface {
	Pick(instances []registry.StoreInstance) (*registry.StoreInstance, error)
	Name() string
}
