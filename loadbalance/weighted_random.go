package loadbalance

import (
	"math/rand"

	"jsonkv/registry"
)

// WeightedRandomBalancer picks instances with probability proportional to
// their Weight. Instances with weight <= 0 are never picked unless every
// weight is non-positive, in which case selection falls back to uniform.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []registry.StoreInstance) (*registry.StoreInstance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	total := 0
	for _, inst := range instances {
		if inst.Weight > 0 {
			total += inst.Weight
		}
	}
	if total == 0 {
		return &instances[rand.Intn(len(instances))], nil
	}

	r := rand.Intn(total)
	for i := range instances {
		if instances[i].Weight <= 0 {
			continue
		}
		r -= instances[i].Weight
		if r < 0 {
			return &instances[i], nil
		}
	}
	return &instances[len(instances)-1], nil
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
