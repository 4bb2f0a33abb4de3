package ecs

import "github.com/kamstrup/intmap"

// List is an ordered category membership list with O(1) idempotent
// add/remove. Removal swaps the last entry into the vacated slot, so
// iteration order is not stable across removals.
type List struct {
	handles []Handle
	index   *intmap.Map[Handle, int32]
}

func NewList() *List {
	return &List{
		index: intmap.New[Handle, int32](storeInitialCapacity),
	}
}

// Add appends the handle unless it is already a member.
func (l *List) Add(h Handle) {
	if _, ok := l.index.Get(h); ok {
		return
	}
	l.index.Put(h, int32(len(l.handles)))
	l.handles = append(l.handles, h)
}

// Remove drops the handle. Removing an absent handle is a no-op; multiple
// expiry paths may request the same removal within one cleanup phase.
func (l *List) Remove(h Handle) {
	pos, ok := l.index.Get(h)
	if !ok {
		return
	}

	last := int32(len(l.handles) - 1)
	if pos != last {
		l.handles[pos] = l.handles[last]
		l.index.Put(l.handles[pos], pos)
	}
	l.handles = l.handles[:last]
	l.index.Del(h)
}

func (l *List) Contains(h Handle) bool {
	_, ok := l.index.Get(h)
	return ok
}

// Handles returns the backing slice. Callers must not mutate it and must
// not add or remove members while ranging over it.
func (l *List) Handles() []Handle {
	return l.handles
}

func (l *List) Len() int {
	return len(l.handles)
}

// Roster owns the category membership lists and the well-known player
// reference. Lists are mutated only between ticks by the orchestrator.
type Roster struct {
	All         *List
	Enemies     *List
	Projectiles *List
	Damageable  *List

	player Handle
}

func NewRoster() *Roster {
	return &Roster{
		All:         NewList(),
		Enemies:     NewList(),
		Projectiles: NewList(),
		Damageable:  NewList(),
		player:      NoHandle,
	}
}

// Player returns the player handle and whether a player is registered.
func (r *Roster) Player() (Handle, bool) {
	return r.player, r.player != NoHandle
}

func (r *Roster) SetPlayer(h Handle) {
	r.player = h
}

func (r *Roster) ClearPlayer() {
	r.player = NoHandle
}

// Drop removes the handle from every category list and clears the player
// reference when it matches. Idempotent.
func (r *Roster) Drop(h Handle) {
	r.All.Remove(h)
	r.Enemies.Remove(h)
	r.Projectiles.Remove(h)
	r.Damageable.Remove(h)
	if r.player == h {
		r.player = NoHandle
	}
}
