// Package segment provides an in-memory, read-only inverted index used as the
// index.Reader collaborator of term filters.
//
// A Segment is an immutable set of documents with a dense ordinal space
// [0, MaxDoc). Each (field, value) pair maps to a Roaring bitmap of the
// documents that contain the value verbatim; values are never analyzed.
//
// # Writing
//
// Writer accumulates documents and seals them into a new Segment on every
// Commit. Reader returns a MultiReader over all committed segments plus the
// documents added since the last commit, so recent writes are visible without
// committing:
//
//	w := segment.NewWriter()
//	for i := 0; i < 100; i++ {
//	    w.AddDocument(segment.NewDocument(
//	        segment.StringField("field1", strconv.Itoa(i*10)),
//	        segment.StringField("all", "xxx"),
//	    ))
//	    if i%40 == 0 {
//	        w.Commit()
//	    }
//	}
//	r := w.Reader() // MaxDoc() == 100, four segments
//
// # Persistence
//
// Encode and Decode serialize a Segment into a self-checking binary format
// (optionally LZ4 or ZSTD compressed); Save, Load and LoadAll move encoded
// segments through a blobstore.Store.
package segment
