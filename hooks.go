package bough

import "weak"

// HookID identifies an update hook.
type HookID uint64

type hookEntry struct {
	id     HookID
	fn     func(dt float64)
	owners []weak.Pointer[Visual]
}

// alive reports whether every owner still exists and is not disposed.
func (e *hookEntry) alive() bool {
	for _, w := range e.owners {
		v := w.Value()
		if v == nil || v.disposed {
			return false
		}
	}
	return true
}

// hookTable holds per-frame callbacks in registration order.
type hookTable struct {
	entries map[HookID]*hookEntry
	order   []HookID
	nextID  HookID
}

func newHookTable() hookTable {
	return hookTable{entries: make(map[HookID]*hookEntry)}
}

// AddUpdateHook registers fn to run every Update. The hook is retired
// automatically once any owner is disposed or collected; owners are held
// weakly.
func (rt *Runtime) AddUpdateHook(fn func(dt float64), owners ...*Visual) HookID {
	h := &rt.hooks
	h.nextID++
	e := &hookEntry{id: h.nextID, fn: fn}
	for _, v := range owners {
		if v != nil {
			e.owners = append(e.owners, weak.Make(v))
		}
	}
	h.entries[e.id] = e
	h.order = append(h.order, e.id)
	return e.id
}

// RemoveUpdateHook unregisters a hook. Reports whether it was registered.
func (rt *Runtime) RemoveUpdateHook(id HookID) bool {
	h := &rt.hooks
	if _, ok := h.entries[id]; !ok {
		return false
	}
	delete(h.entries, id)
	for i, o := range h.order {
		if o == id {
			next := make([]HookID, 0, len(h.order)-1)
			next = append(next, h.order[:i]...)
			h.order = append(next, h.order[i+1:]...)
			break
		}
	}
	return true
}

// HookCount returns the number of registered hooks.
func (rt *Runtime) HookCount() int { return len(rt.hooks.entries) }

// tickHooks runs every hook registered before the tick started. Hooks
// removed during the tick do not run.
func (rt *Runtime) tickHooks(dt float64) {
	snapshot := rt.hooks.order
	for _, id := range snapshot {
		e, ok := rt.hooks.entries[id]
		if !ok {
			continue
		}
		if !e.alive() {
			rt.RemoveUpdateHook(id)
			Logger().Debug("update hook retired", "id", uint64(id))
			continue
		}
		e.fn(dt)
		rt.stats.hooks++
	}
}
