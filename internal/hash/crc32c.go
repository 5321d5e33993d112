package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

// FooterSize is the size of a checksum footer written by Seal.
const FooterSize = 4

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Seal appends the little-endian CRC32C of buf to buf.
func Seal(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, CRC32C(buf))
}

// Verify checks a footer written by Seal and returns the payload in front of
// it.
func Verify(data []byte) ([]byte, bool) {
	if len(data) < FooterSize {
		return nil, false
	}
	end := len(data) - FooterSize
	if CRC32C(data[:end]) != binary.LittleEndian.Uint32(data[end:]) {
		return nil, false
	}
	return data[:end], true
}

// Base64 returns the CRC32C of data the way S3 checksum headers carry it:
// base64 of the big-endian checksum.
func Base64(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}
