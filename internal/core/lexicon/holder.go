package lexicon

import "sync/atomic"

// Holder publishes the live index and swaps in replacements atomically.
// Scans in flight keep the index they loaded; a swap never tears
type Holder struct {
	p atomic.Pointer[Index]
}

// NewHolder starts with ix as the live index. A nil ix is normalized to a
// zero-term index so Load never returns nil
func NewHolder(ix *Index) *Holder {
	h := &Holder{}
	h.Swap(ix)
	return h
}

// Load returns the current live index
func (h *Holder) Load() *Index { return h.p.Load() }

// Swap replaces the live index
func (h *Holder) Swap(ix *Index) {
	if ix == nil {
		ix = Build(nil)
	}
	h.p.Store(ix)
}
