// etcd-backed Registry implementation.
//
// Layout: key /jsonkv/{service}/{addr}, value JSON-encoded StoreInstance.
// Registration is lease-based: a crashed endpoint stops renewing and its
// entry expires, so clients never discover dead addresses.
package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/jsonkv/"

// EtcdRegistry implements Registry on etcd v3. The embedded client is
// goroutine-safe and may be shared.
type EtcdRegistry struct {
	client *clientv3.Client
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register stores the instance under a TTL lease and starts background
// renewal. The lease ID stays local: sharing one EtcdRegistry between
// several registering processes must not race on it.
func (r *EtcdRegistry) Register(service string, instance StoreInstance, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, keyPrefix+service+"/"+instance.Addr, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain renewal acks so the channel never backs up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an endpoint, used on graceful shutdown.
func (r *EtcdRegistry) Deregister(service string, addr string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+service+"/"+addr)
	return err
}

// Discover lists the currently registered endpoints for a service.
func (r *EtcdRegistry) Discover(service string) ([]StoreInstance, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+service+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	instances := make([]StoreInstance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var instance StoreInstance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			continue // skip malformed entries
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// Watch emits the full endpoint list whenever anything under the service
// prefix changes (registration, deregistration, lease expiry). Re-fetching
// the whole list is simpler than interpreting individual events. The
// goroutine exits and the channel closes when ctx is cancelled, so an
// abandoned consumer never leaks it.
func (r *EtcdRegistry) Watch(ctx context.Context, service string) <-chan []StoreInstance {
	ch := make(chan []StoreInstance, 1)

	go func() {
		defer close(ch)
		watchChan := r.client.Watch(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
		for range watchChan {
			instances, err := r.Discover(service)
			if err != nil {
				continue
			}
			select {
			case ch <- instances:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
