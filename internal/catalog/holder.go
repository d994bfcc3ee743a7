package catalog

import "sync/atomic"

// Holder shares one catalog between concurrent readers and swaps it as a
// whole. Readers never observe a partially replaced catalog.
type Holder struct {
	p atomic.Pointer[Catalog]
}

// NewHolder returns a Holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.p.Store(c)
	return h
}

// Load returns the current catalog.
func (h *Holder) Load() *Catalog {
	return h.p.Load()
}

// Swap replaces the catalog and returns the previous one.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.p.Swap(c)
}
