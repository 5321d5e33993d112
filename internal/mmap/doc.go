// Package mmap provides read-only memory-mapped file access.
//
//	m, err := mmap.Open("segments/000001.seg")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes() // valid until Close
//
// On Unix the file is mapped with mmap(2) and madvise(MADV_SEQUENTIAL), since
// segment decoding reads front to back. Other platforms fall back to reading
// the file into memory.
//
// Close is idempotent. Callers must not touch the slice returned by Bytes
// after Close returns.
package mmap
