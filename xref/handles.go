// Package xref maps handles to decoded objects and locates the pages of the
// compressed container.
package xref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
)

type entry struct {
	handle uint32
	index  int
}

// HandleIndex answers handle to object queries once decoding is done.
type HandleIndex struct {
	entries []entry
}

// BuildIndex sorts the handles of objs. Duplicate handles are reported as
// warnings; the first object decoded keeps the handle. handseed scales the
// distribution plot logged at plot verbosity.
func BuildIndex(objs []raw.Object, handseed uint32, logger observability.Logger) *HandleIndex {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	idx := &HandleIndex{entries: make([]entry, len(objs))}
	for i := range objs {
		idx.entries[i] = entry{handle: objs[i].Handle.Value, index: i}
	}
	plot := observability.Enabled(logger, observability.LevelPlot)
	if plot {
		plotHandles(logger, "collected handles", idx.entries, handseed)
	}
	sort.SliceStable(idx.entries, func(a, b int) bool {
		return idx.entries[a].handle < idx.entries[b].handle
	})
	for i := 1; i < len(idx.entries); i++ {
		prev, cur := idx.entries[i-1], idx.entries[i]
		if prev.handle == cur.handle {
			logger.Warn("objects with same handle",
				observability.Hex("handle", cur.handle),
				observability.Int("first", prev.index),
				observability.Int("second", cur.index))
		}
	}
	if plot {
		plotHandles(logger, "sorted handles", idx.entries, handseed)
	}
	return idx
}

func (x *HandleIndex) Len() int { return len(x.entries) }

// IndexOf returns the position of the object with the given handle value.
// Zero is never a valid handle.
func (x *HandleIndex) IndexOf(value uint32) (int, bool) {
	if x == nil || value == 0 {
		return -1, false
	}
	i := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].handle >= value })
	if i < len(x.entries) && x.entries[i].handle == value {
		return x.entries[i].index, true
	}
	return -1, false
}

// ResolveAbsolute implements raw.HandleResolver.
func (x *HandleIndex) ResolveAbsolute(h raw.Handle, owner uint32) uint32 {
	return ResolveAbsolute(h, owner)
}

// Handles returns the sorted handle values.
func (x *HandleIndex) Handles() []uint32 {
	out := make([]uint32, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.handle
	}
	return out
}

// ResolveAbsolute turns a reference into an absolute handle value. Codes 0
// to 5 are absolute, 6 is the next handle after owner unless a value is
// stored, 8 the previous one, 10 and 12 add or subtract the stored offset.
// Other codes resolve to 0.
func ResolveAbsolute(h raw.Handle, owner uint32) uint32 {
	switch {
	case h.Code < 6:
		return h.Value
	case h.Code == 6 && h.Size != 0:
		return h.Value
	case h.Code == 6:
		return owner + 1
	case h.Code == 8:
		return owner - 1
	case h.Code == 10:
		return owner + h.Value
	case h.Code == 12:
		return owner - h.Value
	}
	return 0
}

const plotWidth = 100

func plotHandles(logger observability.Logger, title string, entries []entry, handseed uint32) {
	factor := float64(handseed) / float64(plotWidth+1)
	if factor == 0 {
		factor = 1
	}
	rule := strings.Repeat("-", plotWidth+3)
	observability.Trace(logger, observability.LevelPlot, title)
	observability.Trace(logger, observability.LevelPlot, rule)
	for i, e := range entries {
		y := int(float64(e.handle) / factor)
		if y > plotWidth {
			y = plotWidth
		}
		row := "|" + strings.Repeat(" ", y) + "*" + strings.Repeat(" ", plotWidth-y) + fmt.Sprintf("| %08X", e.handle)
		if i > 0 {
			row += fmt.Sprintf(" (+=)%d", int64(e.handle)-int64(entries[i-1].handle))
		}
		observability.Trace(logger, observability.LevelPlot, row)
	}
	observability.Trace(logger, observability.LevelPlot, rule)
}
