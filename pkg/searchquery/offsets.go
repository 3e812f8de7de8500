package searchquery

import (
	"sort"

	"digraph-be/pkg/editorstate"
)

// mentionCursor hands out entity ranges for mentions laid end to end, each
// followed by a single separator.
type mentionCursor struct {
	offset int
	key    int
}

func (c *mentionCursor) place(displayName string) editorstate.EntityRange {
	length := editorstate.Length(displayName)
	r := editorstate.EntityRange{
		Offset: c.offset,
		Length: length,
		Key:    c.key,
	}
	c.offset += length + 1
	c.key++
	return r
}

// segment is a run of block text, either covered by an entity or not
type segment struct {
	text      string
	entityKey int
	isEntity  bool
}

// splitByRanges cuts text into entity and plain segments in document order.
// Ranges are clamped to the text; ranges overlapping an earlier one are
// ignored.
func splitByRanges(text string, ranges []editorstate.EntityRange) []segment {
	total := editorstate.Length(text)

	sorted := make([]editorstate.EntityRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	segments := make([]segment, 0, len(sorted)*2+1)
	pos := 0
	for _, r := range sorted {
		start := clamp(r.Offset, 0, total)
		end := clamp(r.Offset+r.Length, start, total)
		if start < pos {
			continue
		}
		if start > pos {
			segments = append(segments, segment{text: editorstate.Slice(text, pos, start-pos)})
		}
		segments = append(segments, segment{
			text:      editorstate.Slice(text, start, end-start),
			entityKey: r.Key,
			isEntity:  true,
		})
		pos = end
	}
	if pos < total {
		segments = append(segments, segment{text: editorstate.Slice(text, pos, total-pos)})
	}

	return segments
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
