package safenum

import (
	"cmp"
	"sync"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/safenum/policy"
)

// registry interns types and memoizes derivations, so the same pair of types
// combined with the same operator always yields the same *Binary.
var registry = struct {
	mu          sync.Mutex
	lastID      uint64
	types       *rbtree.Tree[*typeKey]
	derivations *rbtree.Tree[*derivationKey]
}{
	types:       rbtree.New[*typeKey](),
	derivations: rbtree.New[*derivationKey](),
}

// typeKey orders types structurally.
type typeKey struct {
	t *Type
}

func (k *typeKey) Cmp(other *typeKey) int {
	a, b := k.t, other.t
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.min, b.min); c != 0 {
		return c
	}
	if c := cmp.Compare(a.max, b.max); c != 0 {
		return c
	}
	if c := cmp.Compare(promotionName(a.promo), promotionName(b.promo)); c != 0 {
		return c
	}

	ae, be := exceptionActions(a.exc), exceptionActions(b.exc)
	for i := range ae {
		if c := cmp.Compare(ae[i], be[i]); c != 0 {
			return c
		}
	}

	return 0
}

// derivationKey orders derivations by operator and operand type identities.
type derivationKey struct {
	op    policy.Op
	left  uint64
	right uint64

	bin *Binary
	err error
}

func (k *derivationKey) Cmp(other *derivationKey) int {
	if c := cmp.Compare(k.op, other.op); c != 0 {
		return c
	}
	if c := cmp.Compare(k.left, other.left); c != 0 {
		return c
	}

	return cmp.Compare(k.right, other.right)
}

// internLocked returns the registered twin of t or registers t itself.
// Must be called with registry.mu held.
func internLocked(t *Type) *Type {
	key := &typeKey{t: t}
	got := registry.types.InsertReturn(key)
	if got != key {
		return got.t
	}

	registry.lastID++
	t.id = registry.lastID
	return t
}

func intern(t *Type) *Type {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return internLocked(t)
}

func promotionName(p policy.Promotion) string {
	if p == nil {
		return ""
	}

	return p.Name()
}

func exceptionActions(e *policy.Exception) [4]policy.Action {
	if e == nil {
		return [4]policy.Action{}
	}

	return [4]policy.Action{
		e.ArithmeticError,
		e.ImplementationDefinedBehavior,
		e.UndefinedBehavior,
		e.UninitializedValue,
	}
}
