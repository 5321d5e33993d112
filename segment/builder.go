package segment

import "github.com/RoaringBitmap/roaring/v2"

// Builder accumulates documents for a single segment. It is not safe for
// concurrent use.
type Builder struct {
	maxDoc uint32
	fields map[string]map[string]*roaring.Bitmap
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{fields: make(map[string]map[string]*roaring.Bitmap)}
}

// Add indexes doc and returns its ordinal within the segment.
func (b *Builder) Add(doc Document) uint32 {
	ord := b.maxDoc
	b.maxDoc++

	for _, f := range doc {
		values, ok := b.fields[f.Name]
		if !ok {
			values = make(map[string]*roaring.Bitmap)
			b.fields[f.Name] = values
		}
		rb, ok := values[string(f.Value)]
		if !ok {
			rb = roaring.New()
			values[string(f.Value)] = rb
		}
		rb.Add(ord)
	}
	return ord
}

// Len returns the number of documents added so far.
func (b *Builder) Len() uint32 {
	return b.maxDoc
}

// Build seals the documents added so far into an immutable Segment with a
// fresh id from NewSegmentID. The Builder can keep accepting documents; later
// additions do not affect the returned Segment.
func (b *Builder) Build() *Segment {
	fields := make(map[string]map[string]*roaring.Bitmap, len(b.fields))
	for name, values := range b.fields {
		cp := make(map[string]*roaring.Bitmap, len(values))
		for v, rb := range values {
			c := rb.Clone()
			c.RunOptimize()
			cp[v] = c
		}
		fields[name] = cp
	}
	return &Segment{id: NewSegmentID(), maxDoc: b.maxDoc, fields: fields}
}
