package ffnt

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"

	glyphMapEntryType = "GlyphMap"
)

// Emit structs. Prefixed attribute names are spelled out literally because
// encoding/xml has no prefix support on marshal; the parse structs below
// match by local name instead.

type xmlFileOut struct {
	XMLName  xml.Name      `xml:"FfntFile"`
	XmlnsXsi string        `xml:"xmlns:xsi,attr"`
	XmlnsXsd string        `xml:"xmlns:xsd,attr"`
	Entries  xmlEntriesOut `xml:"Entries"`
}

type xmlEntriesOut struct {
	Entries []xmlEntryOut `xml:"FfntEntry"`
}

type xmlEntryOut struct {
	Type     string        `xml:"xsi:type,attr"`
	Header   xmlHeaderOut  `xml:"Header"`
	Glyphs   xmlGlyphsOut  `xml:"Glyphs"`
	Trailing xmlCharDataEl `xml:"TrailingBytesBase64"`
}

type xmlHeaderOut struct {
	Unknown      uint16 `xml:"Unknown,attr"`
	GlyphWidth1  uint16 `xml:"GlyphWidth1,attr"`
	GlyphWidth2  uint16 `xml:"GlyphWidth2,attr"`
	GlyphHeight1 uint16 `xml:"GlyphHeight1,attr"`
	GlyphHeight2 uint16 `xml:"GlyphHeight2,attr"`
	GlyphCount   uint16 `xml:"GlyphCount,attr"`
}

type xmlGlyphsOut struct {
	Glyphs []xmlGlyphOut `xml:"Glyph"`
}

type xmlGlyphOut struct {
	Character       string `xml:"Character,attr"`
	XOffset         uint16 `xml:"XOffset,attr"`
	YOffset         uint16 `xml:"YOffset,attr"`
	Unknown1        int16  `xml:"Unknown1,attr"`
	Unknown2        int16  `xml:"Unknown2,attr"`
	Unknown3        int16  `xml:"Unknown3,attr"`
	UnknownPadding1 int16  `xml:"UnknownPadding1,attr"`
	UnknownPadding2 int16  `xml:"UnknownPadding2,attr"`
}

type xmlCharDataEl struct {
	Text string `xml:",chardata"`
}

// EncodeXML serializes the font as an FfntFile document. The glyph count
// attribute is recomputed from the glyph list, same as the binary encoder.
func (f *FNT) EncodeXML() ([]byte, error) {
	f.Header.GlyphCount = uint16(len(f.Glyphs))

	glyphs := make([]xmlGlyphOut, 0, len(f.Glyphs))
	for _, glyph := range f.Glyphs {
		glyphs = append(glyphs, xmlGlyphOut{
			Character:       EncodeChar(glyph.CodeUnit),
			XOffset:         glyph.XOffset,
			YOffset:         glyph.YOffset,
			Unknown1:        glyph.Unknown1,
			Unknown2:        glyph.Unknown2,
			Unknown3:        glyph.Unknown3,
			UnknownPadding1: glyph.UnknownPadding1,
			UnknownPadding2: glyph.UnknownPadding2,
		})
	}

	doc := xmlFileOut{
		XmlnsXsi: xsiNamespace,
		XmlnsXsd: xsdNamespace,
		Entries: xmlEntriesOut{
			Entries: []xmlEntryOut{{
				Type: glyphMapEntryType,
				Header: xmlHeaderOut{
					Unknown:      f.Header.Unknown,
					GlyphWidth1:  f.Header.GlyphWidth1,
					GlyphWidth2:  f.Header.GlyphWidth2,
					GlyphHeight1: f.Header.GlyphHeight1,
					GlyphHeight2: f.Header.GlyphHeight2,
					GlyphCount:   f.Header.GlyphCount,
				},
				Glyphs:   xmlGlyphsOut{Glyphs: glyphs},
				Trailing: xmlCharDataEl{Text: base64.StdEncoding.EncodeToString(f.TrailingBytes)},
			}},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// Parse structs. Containers and attributes are pointers so a missing piece
// can be told apart from an empty one and reported by name.

type xmlFileIn struct {
	XMLName xml.Name      `xml:"FfntFile"`
	Entries *xmlEntriesIn `xml:"Entries"`
}

type xmlEntriesIn struct {
	Entries []xmlEntryIn `xml:"FfntEntry"`
}

type xmlEntryIn struct {
	Type     string         `xml:"type,attr"`
	Header   *xmlHeaderIn   `xml:"Header"`
	Glyphs   *xmlGlyphsIn   `xml:"Glyphs"`
	Trailing *xmlCharDataEl `xml:"TrailingBytesBase64"`
}

type xmlHeaderIn struct {
	Unknown      *string `xml:"Unknown,attr"`
	GlyphWidth1  *string `xml:"GlyphWidth1,attr"`
	GlyphWidth2  *string `xml:"GlyphWidth2,attr"`
	GlyphHeight1 *string `xml:"GlyphHeight1,attr"`
	GlyphHeight2 *string `xml:"GlyphHeight2,attr"`
	GlyphCount   *string `xml:"GlyphCount,attr"`
}

type xmlGlyphsIn struct {
	Glyphs []xmlGlyphIn `xml:"Glyph"`
}

type xmlGlyphIn struct {
	Character       *string `xml:"Character,attr"`
	XOffset         *string `xml:"XOffset,attr"`
	YOffset         *string `xml:"YOffset,attr"`
	Unknown1        *string `xml:"Unknown1,attr"`
	Unknown2        *string `xml:"Unknown2,attr"`
	Unknown3        *string `xml:"Unknown3,attr"`
	UnknownPadding1 *string `xml:"UnknownPadding1,attr"`
	UnknownPadding2 *string `xml:"UnknownPadding2,attr"`
}

// DecodeXML parses an FfntFile document back into the font model.
func (f *FNT) DecodeXML(raw []byte) error {
	var doc xmlFileIn
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return &InvalidFormatError{Expected: "FfntFile root element", Err: err}
	}

	if doc.Entries == nil {
		return &InvalidFormatError{Expected: "missing Entries element"}
	}

	var entry *xmlEntryIn
	for i := range doc.Entries.Entries {
		if doc.Entries.Entries[i].Type == glyphMapEntryType {
			entry = &doc.Entries.Entries[i]
			break
		}
	}
	if entry == nil {
		return &InvalidFormatError{Expected: "missing GlyphMap FfntEntry"}
	}

	if entry.Header == nil {
		return &InvalidFormatError{Expected: "missing Header element"}
	}
	if entry.Glyphs == nil {
		return &InvalidFormatError{Expected: "missing Glyphs element"}
	}

	header := Header{}
	headerAttrs := []struct {
		name string
		text *string
		dst  *uint16
	}{
		{"Unknown", entry.Header.Unknown, &header.Unknown},
		{"GlyphWidth1", entry.Header.GlyphWidth1, &header.GlyphWidth1},
		{"GlyphWidth2", entry.Header.GlyphWidth2, &header.GlyphWidth2},
		{"GlyphHeight1", entry.Header.GlyphHeight1, &header.GlyphHeight1},
		{"GlyphHeight2", entry.Header.GlyphHeight2, &header.GlyphHeight2},
		{"GlyphCount", entry.Header.GlyphCount, &header.GlyphCount},
	}
	for _, attr := range headerAttrs {
		v, err := parseUint16Attr("Header", attr.name, attr.text)
		if err != nil {
			return err
		}
		*attr.dst = v
	}

	glyphs := make([]Glyph, 0, len(entry.Glyphs.Glyphs))
	for i, xg := range entry.Glyphs.Glyphs {
		glyph, err := decodeXMLGlyph(i, xg)
		if err != nil {
			return err
		}
		glyphs = append(glyphs, glyph)
	}

	trailing := []byte{}
	if entry.Trailing != nil {
		text := strings.TrimSpace(entry.Trailing.Text)
		if text != "" {
			decoded, err := base64.StdEncoding.DecodeString(text)
			if err != nil {
				return &DecodeError{Text: text, Err: err}
			}
			trailing = decoded
		}
	}

	f.Header = header
	f.Glyphs = glyphs
	f.TrailingBytes = trailing
	// GlyphCount in the XML header is never authoritative; the parsed list is.
	f.Header.GlyphCount = uint16(len(f.Glyphs))

	return nil
}

func decodeXMLGlyph(index int, xg xmlGlyphIn) (Glyph, error) {
	where := fmt.Sprintf("Glyph %d", index)

	var glyph Glyph
	if xg.Character == nil {
		return glyph, &InvalidFormatError{Expected: where + ": missing Character attribute"}
	}
	if *xg.Character == "" {
		return glyph, &InvalidFormatError{Expected: where + ": empty Character attribute"}
	}
	codeUnit, err := DecodeChar(*xg.Character)
	if err != nil {
		return glyph, &InvalidFormatError{Expected: where + ": Character attribute", Err: err}
	}
	glyph.CodeUnit = codeUnit

	unsignedAttrs := []struct {
		name string
		text *string
		dst  *uint16
	}{
		{"XOffset", xg.XOffset, &glyph.XOffset},
		{"YOffset", xg.YOffset, &glyph.YOffset},
	}
	for _, attr := range unsignedAttrs {
		v, err := parseUint16Attr(where, attr.name, attr.text)
		if err != nil {
			return glyph, err
		}
		*attr.dst = v
	}

	signedAttrs := []struct {
		name string
		text *string
		dst  *int16
	}{
		{"Unknown1", xg.Unknown1, &glyph.Unknown1},
		{"Unknown2", xg.Unknown2, &glyph.Unknown2},
		{"Unknown3", xg.Unknown3, &glyph.Unknown3},
		{"UnknownPadding1", xg.UnknownPadding1, &glyph.UnknownPadding1},
		{"UnknownPadding2", xg.UnknownPadding2, &glyph.UnknownPadding2},
	}
	for _, attr := range signedAttrs {
		v, err := parseInt16Attr(where, attr.name, attr.text)
		if err != nil {
			return glyph, err
		}
		*attr.dst = v
	}

	return glyph, nil
}

func parseUint16Attr(where, name string, text *string) (uint16, error) {
	if text == nil {
		return 0, &InvalidFormatError{Expected: fmt.Sprintf("%s: missing %s attribute", where, name)}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(*text), 10, 16)
	if err != nil {
		return 0, &InvalidFormatError{Expected: fmt.Sprintf("%s: %s attribute", where, name), Err: err}
	}
	return uint16(v), nil
}

func parseInt16Attr(where, name string, text *string) (int16, error) {
	if text == nil {
		return 0, &InvalidFormatError{Expected: fmt.Sprintf("%s: missing %s attribute", where, name)}
	}
	v, err := strconv.ParseInt(strings.TrimSpace(*text), 10, 16)
	if err != nil {
		return 0, &InvalidFormatError{Expected: fmt.Sprintf("%s: %s attribute", where, name), Err: err}
	}
	return int16(v), nil
}
