// Package hash provides the CRC32-Castagnoli (CRC32C) checksums that guard
// persisted segments.
//
// Encoded segments end in a 4-byte footer:
//
//	buf = hash.Seal(buf)
//	payload, ok := hash.Verify(buf)
//
// S3 uploads carry the same checksum in base64 form (hash.Base64).
package hash
