package transport

import (
	"fmt"

	"jsonkv/loadbalance"
	"jsonkv/registry"
)

// DialService resolves a store endpoint through the registry and dials it.
// The balancer picks among the discovered instances; key-based routing is
// deliberately not offered.
func DialService(reg registry.Registry, bal loadbalance.Balancer, service string) (*Conn, error) {
	instances, err := reg.Discover(service)
	if err != nil {
		return nil, err
	}
	instance, err := bal.Pick(instances)
	if err != nil {
		return nil, fmt.Errorf("transport: no endpoint for service %q: %w", service, err)
	}
	return Dial(instance.Addr)
}
