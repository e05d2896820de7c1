package diag

import (
	"sort"
)

// Bag collects diagnostics of independent inputs, e.g. one per file in a batch run.
type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether anything was collected; every kind is terminal.
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

// Items возвращает срез диагностик. Не модифицируйте его.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start offset, end offset and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Span.File != dj.Span.File {
			return di.Span.File < dj.Span.File
		}
		if di.Span.Start.Offset != dj.Span.Start.Offset {
			return di.Span.Start.Offset < dj.Span.Start.Offset
		}
		if di.Span.End.Offset != dj.Span.End.Offset {
			return di.Span.End.Offset < dj.Span.End.Offset
		}
		return di.Code < dj.Code
	})
}

// CountByKind returns how many diagnostics of each kind were collected.
func (b *Bag) CountByKind() map[Kind]int {
	out := make(map[Kind]int, 3)
	for _, d := range b.items {
		out[d.Kind]++
	}
	return out
}
