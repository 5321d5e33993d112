package segment

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/termfilter/internal/hash"
)

// Encoded layout (little endian):
//
//	[magic "TFSG"][version u8][compression u8][reserved u16]
//	[maxDoc u32][rawLen u32][storedLen u32]
//	[body: storedLen bytes]
//	[crc32c(header+body) u32]
//
// The uncompressed body is a sorted field/value dictionary:
//
//	numFields uvarint
//	  nameLen uvarint, name, numValues uvarint
//	    valueLen uvarint, value, bitmapLen uvarint, roaring bitmap
const (
	formatVersion = 1
	headerSize    = 20
	footerSize    = hash.FooterSize
)

var magic = [4]byte{'T', 'F', 'S', 'G'}

var (
	// ErrCorrupt is returned when encoded segment data fails validation.
	ErrCorrupt = errors.New("segment: corrupt data")
	// ErrUnsupportedVersion is returned for encodings newer than this package.
	ErrUnsupportedVersion = errors.New("segment: unsupported format version")
)

// Encode writes s to w and returns the number of bytes written.
// Only WithCompression is relevant here.
func Encode(w io.Writer, s *Segment, opts ...Option) (int64, error) {
	o := applyOptions(opts)

	raw, err := encodeBody(s)
	if err != nil {
		return 0, err
	}
	stored, c, err := compressBlock(o.compression, raw)
	if err != nil {
		return 0, fmt.Errorf("segment: compress: %w", err)
	}

	buf := make([]byte, headerSize, headerSize+len(stored)+footerSize)
	copy(buf[0:4], magic[:])
	buf[4] = formatVersion
	buf[5] = byte(c)
	binary.LittleEndian.PutUint32(buf[8:], s.maxDoc)
	binary.LittleEndian.PutUint32(buf[12:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(buf[16:], uint32(len(stored)))
	buf = append(buf, stored...)
	buf = hash.Seal(buf)

	n, err := w.Write(buf)
	return int64(n), err
}

// Marshal encodes s into a byte slice.
func Marshal(s *Segment, opts ...Option) ([]byte, error) {
	var b bytes.Buffer
	if _, err := Encode(&b, s, opts...); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decode parses an encoded segment. The returned Segment does not reference
// data and gets a fresh SegmentID.
func Decode(data []byte) (*Segment, error) {
	if len(data) < headerSize+footerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than header", ErrCorrupt, len(data))
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[4]; v != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	c := Compression(data[5])
	maxDoc := binary.LittleEndian.Uint32(data[8:])
	rawLen := binary.LittleEndian.Uint32(data[12:])
	storedLen := binary.LittleEndian.Uint32(data[16:])

	if uint64(len(data)) != uint64(headerSize)+uint64(storedLen)+footerSize {
		return nil, fmt.Errorf("%w: length mismatch", ErrCorrupt)
	}
	if !plausibleRawLen(c, rawLen, storedLen) {
		return nil, fmt.Errorf("%w: body of %d bytes cannot expand to %d", ErrCorrupt, storedLen, rawLen)
	}
	sealed, ok := hash.Verify(data)
	if !ok {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	raw, err := decompressBlock(c, sealed[headerSize:], int(rawLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, c, err)
	}

	fields, err := decodeBody(raw, maxDoc)
	if err != nil {
		return nil, err
	}
	return &Segment{id: NewSegmentID(), maxDoc: maxDoc, fields: fields}, nil
}

func encodeBody(s *Segment) ([]byte, error) {
	var body []byte
	names := s.Fields()
	body = binary.AppendUvarint(body, uint64(len(names)))
	for _, name := range names {
		values := s.fields[name]
		body = binary.AppendUvarint(body, uint64(len(name)))
		body = append(body, name...)
		body = binary.AppendUvarint(body, uint64(len(values)))

		keys := make([]string, 0, len(values))
		for v := range values {
			keys = append(keys, v)
		}
		sort.Strings(keys)

		for _, v := range keys {
			bm, err := values[v].ToBytes()
			if err != nil {
				return nil, fmt.Errorf("segment: encode postings %s:%s: %w", name, v, err)
			}
			body = binary.AppendUvarint(body, uint64(len(v)))
			body = append(body, v...)
			body = binary.AppendUvarint(body, uint64(len(bm)))
			body = append(body, bm...)
		}
	}
	return body, nil
}

type bodyReader struct {
	buf []byte
	err error
}

func (r *bodyReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.err = fmt.Errorf("%w: bad varint", ErrCorrupt)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *bodyReader) bytes() []byte {
	n := r.uvarint()
	if r.err != nil {
		return nil
	}
	if n > uint64(len(r.buf)) {
		r.err = fmt.Errorf("%w: truncated body", ErrCorrupt)
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func decodeBody(raw []byte, maxDoc uint32) (map[string]map[string]*roaring.Bitmap, error) {
	r := &bodyReader{buf: raw}

	numFields := r.uvarint()
	if r.err != nil {
		return nil, r.err
	}
	fields := make(map[string]map[string]*roaring.Bitmap, min(numFields, 1024))
	for i := uint64(0); i < numFields; i++ {
		name := string(r.bytes())
		numValues := r.uvarint()
		if r.err != nil {
			return nil, r.err
		}
		values := make(map[string]*roaring.Bitmap, min(numValues, 1<<16))
		for j := uint64(0); j < numValues; j++ {
			value := string(r.bytes())
			bm := r.bytes()
			if r.err != nil {
				return nil, r.err
			}
			rb := roaring.New()
			if err := rb.UnmarshalBinary(bm); err != nil {
				return nil, fmt.Errorf("%w: postings %s:%s: %w", ErrCorrupt, name, value, err)
			}
			if !rb.IsEmpty() && rb.Maximum() >= maxDoc {
				return nil, fmt.Errorf("%w: postings %s:%s exceed maxDoc %d", ErrCorrupt, name, value, maxDoc)
			}
			values[value] = rb
		}
		fields[name] = values
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(r.buf))
	}
	return fields, nil
}
