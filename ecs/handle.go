package ecs

// Handle identifies one logical game object across all component stores.
type Handle int32

// NoHandle is the sentinel for "no entity", used for the missing player
// reference among other things.
const NoHandle Handle = -1

// Allocator issues entity handles. Handles are never reused, so a stale
// handle held across a removal simply stops resolving in every store.
type Allocator struct {
	next Handle
}

func (a *Allocator) Alloc() Handle {
	h := a.next
	a.next++
	return h
}
