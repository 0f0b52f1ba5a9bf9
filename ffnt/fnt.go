package ffnt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
)

// The FNT layout is a single fixed-width glyph table. There are no section
// magics or offsets; the header is immediately followed by glyph records and
// whatever is left after the table is carried along untouched.

type Header struct { //   Offset  Size  Description
	Unknown      uint16 // 0x00    0x02  Unknown, preserved verbatim
	GlyphWidth1  uint16 // 0x02    0x02  Glyph width
	GlyphWidth2  uint16 // 0x04    0x02  Glyph width (second copy?)
	GlyphHeight1 uint16 // 0x06    0x02  Glyph height
	GlyphHeight2 uint16 // 0x08    0x02  Glyph height (second copy?)
	GlyphCount   uint16 // 0x0A    0x02  Number of glyph records
}

type Glyph struct { //          Offset  Size  Description
	CodeUnit        uint16 // 0x00    0x02  UTF-16 code unit (not always a valid scalar)
	Unknown1        int16  // 0x02    0x02  Unknown, preserved verbatim
	YOffset         uint16 // 0x04    0x02  Y offset (stored before X in binary)
	XOffset         uint16 // 0x06    0x02  X offset
	Unknown2        int16  // 0x08    0x02  Unknown, preserved verbatim
	Unknown3        int16  // 0x0A    0x02  Unknown, preserved verbatim
	UnknownPadding1 int16  // 0x0C    0x02  Unknown, preserved verbatim
	UnknownPadding2 int16  // 0x0E    0x02  Unknown, preserved verbatim
}

type FNT struct {
	Header        Header
	Glyphs        []Glyph
	TrailingBytes []byte
}

// Decode reads a full FNT file: 12-byte header, GlyphCount 16-byte glyph
// records, then any remaining bytes as TrailingBytes. Glyph order is
// positional and kept exactly as stored.
func (f *FNT) Decode(raw []byte) error {
	if len(raw) < HEADER_SIZE {
		return &TooSmallError{Size: len(raw)}
	}

	f.Header.Unknown = binary.LittleEndian.Uint16(raw[0:2])
	f.Header.GlyphWidth1 = binary.LittleEndian.Uint16(raw[2:4])
	f.Header.GlyphWidth2 = binary.LittleEndian.Uint16(raw[4:6])
	f.Header.GlyphHeight1 = binary.LittleEndian.Uint16(raw[6:8])
	f.Header.GlyphHeight2 = binary.LittleEndian.Uint16(raw[8:10])
	f.Header.GlyphCount = binary.LittleEndian.Uint16(raw[10:HEADER_SIZE])

	// The declared count is only trusted after checking it against the bytes
	// actually present.
	glyphCount := int(f.Header.GlyphCount)
	required := HEADER_SIZE + glyphCount*GLYPH_RECORD_SIZE
	if len(raw) < required {
		return &TruncatedError{GlyphCount: glyphCount, Required: required, Size: len(raw)}
	}

	f.Glyphs = make([]Glyph, 0, glyphCount)
	for i := 0; i < glyphCount; i++ {
		recordStart := HEADER_SIZE + i*GLYPH_RECORD_SIZE
		record := raw[recordStart : recordStart+GLYPH_RECORD_SIZE]

		f.Glyphs = append(f.Glyphs, Glyph{
			CodeUnit:        binary.LittleEndian.Uint16(record[0:2]),
			Unknown1:        int16(binary.LittleEndian.Uint16(record[2:4])),
			YOffset:         binary.LittleEndian.Uint16(record[4:6]),
			XOffset:         binary.LittleEndian.Uint16(record[6:8]),
			Unknown2:        int16(binary.LittleEndian.Uint16(record[8:10])),
			Unknown3:        int16(binary.LittleEndian.Uint16(record[10:12])),
			UnknownPadding1: int16(binary.LittleEndian.Uint16(record[12:14])),
			UnknownPadding2: int16(binary.LittleEndian.Uint16(record[14:GLYPH_RECORD_SIZE])),
		})
	}

	// Whatever follows the glyph table is an opaque blob. It is never parsed,
	// only carried so unknown format variants survive a round trip. Empty,
	// not nil, when nothing follows.
	trailing := raw[required:]
	f.TrailingBytes = make([]byte, len(trailing))
	copy(f.TrailingBytes, trailing)

	if Debug {
		pprint(f.Header)
		fmt.Printf("decoded %d glyphs, %d trailing bytes\n", len(f.Glyphs), len(f.TrailingBytes))
	}

	return nil
}

// Encode writes the file back out. GlyphCount is always recomputed from the
// glyph list; past 65535 glyphs it silently wraps to the low 16 bits, same
// as the field on disk would.
func (f *FNT) Encode() []byte {
	f.Header.GlyphCount = uint16(len(f.Glyphs))

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	binaryWrite(w, f.Header.Unknown)
	binaryWrite(w, f.Header.GlyphWidth1)
	binaryWrite(w, f.Header.GlyphWidth2)
	binaryWrite(w, f.Header.GlyphHeight1)
	binaryWrite(w, f.Header.GlyphHeight2)
	binaryWrite(w, f.Header.GlyphCount)

	for _, glyph := range f.Glyphs {
		binaryWrite(w, glyph.CodeUnit)
		binaryWrite(w, glyph.Unknown1)
		binaryWrite(w, glyph.YOffset)
		binaryWrite(w, glyph.XOffset)
		binaryWrite(w, glyph.Unknown2)
		binaryWrite(w, glyph.Unknown3)
		binaryWrite(w, glyph.UnknownPadding1)
		binaryWrite(w, glyph.UnknownPadding2)
	}

	_, _ = w.Write(f.TrailingBytes)
	w.Flush()

	return buf.Bytes()
}
