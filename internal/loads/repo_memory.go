package loads

import (
	"context"
	"math/rand"
	"sync"
)

// MemoryRepo is the default in-process repository. Slices preserve insertion
// order, which the stable sort relies on for tie-breaking. A single mutex
// makes every operation atomic against the store.
type MemoryRepo struct {
	mu    sync.Mutex
	loads []Load
	calls []PhoneCall
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

var _ Repository = (*MemoryRepo)(nil)

func (r *MemoryRepo) InsertLoad(ctx context.Context, l Load) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cur := range r.loads {
		if cur.LoadID == l.LoadID {
			return ErrDuplicateLoadID
		}
	}
	r.loads = append(r.loads, l)
	return nil
}

func (r *MemoryRepo) GetLoad(ctx context.Context, ref string) (Load, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(ref)
}

func (r *MemoryRepo) getLocked(ref string) (Load, error) {
	for _, cur := range r.loads {
		if cur.ID == ref {
			return cur, nil
		}
	}
	for _, cur := range r.loads {
		if cur.LoadID == ref {
			return cur, nil
		}
	}
	return Load{}, ErrNotFound
}

func (r *MemoryRepo) ListLoads(ctx context.Context, f Filters) ([]Load, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Load, 0)
	for _, cur := range r.loads {
		if f.Match(cur) {
			out = append(out, cur)
		}
	}
	SortLoads(out, f.SortBy, f.SortOrder)
	return out, nil
}

func (r *MemoryRepo) UpdateLoad(ctx context.Context, l Load) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, cur := range r.loads {
		if cur.ID == l.ID {
			idx = i
			continue
		}
		if cur.LoadID == l.LoadID {
			return ErrDuplicateLoadID
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	r.loads[idx] = l
	return nil
}

func (r *MemoryRepo) DeleteLoad(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, cur := range r.loads {
		if cur.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	r.loads = append(r.loads[:idx], r.loads[idx+1:]...)

	kept := r.calls[:0]
	for _, c := range r.calls {
		if c.ShipmentID != id {
			kept = append(kept, c)
		}
	}
	r.calls = kept
	return nil
}

func (r *MemoryRepo) RandomLoad(ctx context.Context) (Load, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.loads) == 0 {
		return Load{}, ErrNotFound
	}
	return r.loads[rand.Intn(len(r.loads))], nil
}

func (r *MemoryRepo) InsertPhoneCall(ctx context.Context, c PhoneCall) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.getLocked(c.ShipmentID); err != nil {
		return err
	}
	r.calls = append(r.calls, c)
	return nil
}

func (r *MemoryRepo) ListPhoneCallsByLoad(ctx context.Context, loadUUID string) ([]PhoneCall, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PhoneCall, 0)
	for _, c := range r.calls {
		if c.ShipmentID == loadUUID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeletePhoneCallsByLoad(ctx context.Context, loadUUID string) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	kept := r.calls[:0]
	for _, c := range r.calls {
		if c.ShipmentID == loadUUID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.calls = kept
	return removed, nil
}

func (r *MemoryRepo) ListPhoneCalls(ctx context.Context, f CallFilters) ([]PhoneCall, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PhoneCall, 0)
	for _, c := range r.calls {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}
