package ecs

import "reflect"

// componentNames enumerates every component kind the world registers.
// Adding a kind here is the only wiring a new component needs.
var componentNames = []string{
	"name", "nickname", "icon",
	"is_mob", "is_friendly", "is_ephemeral", "is_player",
	"speed", "acts_next",
	"stats", "wounds", "cash", "num_deaths", "count", "momentum",
	"voice", "goal",
	"buffs",
	"item_kind", "item_power", "equipped_at",
	"powers",
	"location",
}

// Get reads component kind into dst's pointee, returning false if e has no
// value set for that kind. Per the defaults-elide-to-absence invariant
// (spec.md §4.6), "no value set" and "zero value" are treated identically
// by callers that use Get's ok result to fall back to a default.
func Get[T any](w *World, e Entity, kind string) (T, bool) {
	var zero T
	if !e.Valid() {
		return zero, false
	}
	comp, ok := w.components[kind]
	if !ok {
		return zero, false
	}
	data, ok := e.raw.GetComponentData(comp)
	if !ok {
		return zero, false
	}
	v, ok := data.(T)
	return v, ok
}

// With is Get but returns T's zero value instead of a second return when
// absent, for call sites that already treat zero-value-and-absent as one
// case.
func With[T any](w *World, e Entity, kind string) T {
	v, _ := Get[T](w, e, kind)
	return v
}

// Set assigns value to e's slot for kind, creating the slot if absent.
// Setting T's zero value removes the slot instead, so a zero value is never
// stored.
func Set[T any](w *World, e Entity, kind string, value T) {
	if !e.Valid() {
		return
	}
	comp, ok := w.components[kind]
	if !ok {
		return
	}
	if reflect.ValueOf(&value).Elem().IsZero() {
		e.raw.RemoveComponent(comp)
		return
	}
	e.raw.AddComponent(comp, value)
}

// WithMut fetches the current value for kind (or T's zero value if unset),
// lets f mutate a pointer to it, then writes the result back. Use this for
// in-place updates on value-typed components (e.g. Stats, Wounds) where Get
// followed by Set would otherwise require repeating the type parameter.
func WithMut[T any](w *World, e Entity, kind string, f func(*T)) {
	v := With[T](w, e, kind)
	f(&v)
	Set(w, e, kind, v)
}

// Remove clears e's slot for kind, returning it to the absent state.
func Remove(w *World, e Entity, kind string) {
	if !e.Valid() {
		return
	}
	comp, ok := w.components[kind]
	if !ok {
		return
	}
	e.raw.RemoveComponent(comp)
}

// Has reports whether e currently has a value set for kind.
func Has(w *World, e Entity, kind string) bool {
	if !e.Valid() {
		return false
	}
	comp, ok := w.components[kind]
	if !ok {
		return false
	}
	_, ok = e.raw.GetComponentData(comp)
	return ok
}
