package loadbalance

import (
	"errors"
	"sync/atomic"

	"jsonkv/registry"
)

// ErrNoInstances is returned when the discovered set is empty.
var ErrNoInstances = errors.New("loadbalance: no instances available")

// RoundRobinBalancer walks the instance list in order. Lock-free via an
// atomic counter.
type RoundRobinBalancer struct {
	counter atomic.Int64
}

func (b *RoundRobinBalancer) Pick(instances []registry.StoreInstance) (*registry.StoreInstance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}
	index := b.counter.Add(1) % int64(len(instances))
	return &instances[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
