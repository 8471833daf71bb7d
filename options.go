package sajson

import (
	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
	"github.com/biggeezerdevelopment/sajson-go/internal/ast"
)

type parseConfig struct {
	strategy  arena.Strategy
	threshold int
}

func defaultConfig() parseConfig {
	return parseConfig{
		strategy:  arena.SingleAllocation(),
		threshold: ast.DefaultKeySortThreshold,
	}
}

// ParseOption configures a Parse, ParseInPlace, or ParseCopy call.
type ParseOption func(*parseConfig)

// WithAllocationStrategy overrides the default single-allocation
// arena with an alternate arena.Strategy, such as WithPooledArena's.
func WithAllocationStrategy(s arena.Strategy) ParseOption {
	return func(c *parseConfig) { c.strategy = s }
}

// WithPooledArena draws arena backing buffers from one sync.Pool shared
// by every Parse call that uses this option, reusing a same-or-larger
// buffer when the pool holds one. Each document still gets an arena no
// one else holds. A buffer goes back to the pool only when its parse
// fails: a successful Document keeps its buffer, and Document has no
// method that releases it.
func WithPooledArena() ParseOption {
	return WithAllocationStrategy(pooledStrategy)
}

var pooledStrategy = arena.Pooled()

// WithKeySortThreshold overrides the object key count above which an
// object's keys are sorted for binary-search lookup. The default is
// 100, matching the reference implementation.
func WithKeySortThreshold(n int) ParseOption {
	return func(c *parseConfig) { c.threshold = n }
}

// WithUnsortedObjects disables key sorting entirely: FindKey and
// Lookup always scan linearly, and ObjectKeyAt/ObjectValueAt preserve
// source order regardless of object size.
func WithUnsortedObjects() ParseOption {
	return func(c *parseConfig) { c.threshold = -1 }
}
