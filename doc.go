// Package termfilter evaluates term filters over an inverted index.
//
// A filter resolves to the set of documents that contain a term (TermFilter)
// or any of several terms (TermsFilter). Results are either docset.None or a
// fixed-size bitset over [0, MaxDoc) with at least one member; an empty
// bitset is never returned.
//
// # Quick Start
//
//	w := segment.NewWriter()
//	w.AddDocument(segment.NewDocument(segment.StringField("color", "red")))
//	w.Commit()
//
//	f := filter.NewTermsFilter(
//	    term.NewString("color", "red"),
//	    term.NewString("color", "blue"),
//	)
//	docs, err := f.DocIDSet(w.Reader())
//
// # Executor
//
// The Executor evaluates a filter against each segment of a composite reader
// separately, which lets a cache.Cache memoize results per immutable segment:
//
//	metrics := &termfilter.BasicMetricsCollector{}
//	c := cache.New(64<<20, cache.WithMetrics(metrics))
//	exec := termfilter.New(
//	    termfilter.WithCache(c),
//	    termfilter.WithMetricsCollector(metrics),
//	)
//	docs, err := exec.Evaluate(ctx, f, w.Reader())
//
// Filters are comparable by value: Equal, Hash and Key agree, so two
// independently built filters over the same terms share one cache entry.
//
// # Persistence
//
// Segments encode to a compact, checksummed format and can be stored in any
// blobstore.Store (local disk, memory, S3 or MinIO):
//
//	store := blobstore.NewLocalStore("./index")
//	err := segment.Save(ctx, store, "seg-000001", seg)
//	segs, err := segment.LoadAll(ctx, store, "seg-")
//	docs, err := exec.Evaluate(ctx, f, segment.NewMultiReader(segs...))
package termfilter
