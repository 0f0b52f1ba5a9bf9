package ffnt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFont() *FNT {
	return &FNT{
		Header: Header{
			Unknown:      1,
			GlyphWidth1:  0x10,
			GlyphWidth2:  0x10,
			GlyphHeight1: 0x10,
			GlyphHeight2: 0x10,
		},
		Glyphs: []Glyph{
			{CodeUnit: 'A', XOffset: 3, YOffset: 5},
		},
		TrailingBytes: []byte{},
	}
}

func TestEncodeXML(t *testing.T) {
	raw, err := sampleFont().EncodeXML()
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, text, `<FfntFile xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">`)
	assert.Contains(t, text, `<FfntEntry xsi:type="GlyphMap">`)
	assert.Contains(t, text, `GlyphCount="1"`)
	assert.Contains(t, text, `Character="A" XOffset="3" YOffset="5"`)
	assert.Contains(t, text, `<TrailingBytesBase64></TrailingBytesBase64>`)
}

func TestXMLRoundTrip(t *testing.T) {
	original := &FNT{
		Header: Header{
			Unknown:      9,
			GlyphWidth1:  16,
			GlyphWidth2:  18,
			GlyphHeight1: 20,
			GlyphHeight2: 22,
		},
		Glyphs: []Glyph{
			{CodeUnit: 'A', XOffset: 3, YOffset: 5},
			{CodeUnit: 0x0009, XOffset: 1, YOffset: 2, Unknown1: -5},
			{CodeUnit: 0x0000, Unknown2: 12000, Unknown3: -12000},
			{CodeUnit: '"', UnknownPadding1: -1, UnknownPadding2: 1},
			{CodeUnit: 0x3042, XOffset: 65535, YOffset: 65535},
		},
		TrailingBytes: []byte{0x00, 0xFF, 0x42},
	}

	raw, err := original.EncodeXML()
	require.NoError(t, err)

	var decoded FNT
	require.NoError(t, decoded.DecodeXML(raw))

	original.Header.GlyphCount = uint16(len(original.Glyphs))
	if diff := cmp.Diff(original, &decoded); diff != "" {
		t.Errorf("model mismatch after XML round trip (-want +got):\n%s", diff)
	}
}

func TestXMLRoundTripEmptyTrailing(t *testing.T) {
	raw, err := sampleFont().EncodeXML()
	require.NoError(t, err)

	var decoded FNT
	require.NoError(t, decoded.DecodeXML(raw))
	assert.NotNil(t, decoded.TrailingBytes)
	assert.Empty(t, decoded.TrailingBytes)
}

func TestXMLTabEscape(t *testing.T) {
	fnt := &FNT{Glyphs: []Glyph{{CodeUnit: 0x0009}}}

	raw, err := fnt.EncodeXML()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Character="\t"`)

	var decoded FNT
	require.NoError(t, decoded.DecodeXML(raw))
	require.Len(t, decoded.Glyphs, 1)
	assert.Equal(t, uint16(0x0009), decoded.Glyphs[0].CodeUnit)
}

// A lone surrogate encodes fine but the text form must never decode; the
// asymmetry is part of the format contract.
func TestXMLLoneSurrogateAsymmetry(t *testing.T) {
	fnt := &FNT{Glyphs: []Glyph{{CodeUnit: 0xD800}}}

	raw, err := fnt.EncodeXML()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Character="\uD800"`)

	var decoded FNT
	err = decoded.DecodeXML(raw)
	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)
}

// 0xFFFE and 0xFFFF may not appear literally in an XML document; they must
// survive the round trip in escaped form instead of degrading to U+FFFD.
func TestXMLRoundTripNonCharacters(t *testing.T) {
	original := &FNT{
		Glyphs: []Glyph{
			{CodeUnit: 0xFFFE},
			{CodeUnit: 0xFFFF},
		},
		TrailingBytes: []byte{},
	}

	raw, err := original.EncodeXML()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), string(rune(0xFFFD)))

	var decoded FNT
	require.NoError(t, decoded.DecodeXML(raw))
	require.Len(t, decoded.Glyphs, 2)
	assert.Equal(t, uint16(0xFFFE), decoded.Glyphs[0].CodeUnit)
	assert.Equal(t, uint16(0xFFFF), decoded.Glyphs[1].CodeUnit)
}

func TestDecodeXMLBinaryScenario(t *testing.T) {
	// full binary -> XML -> binary loop over the one-glyph sample
	expected := sampleFontBytes()

	var fnt FNT
	require.NoError(t, fnt.Decode(expected))

	xmlRaw, err := fnt.EncodeXML()
	require.NoError(t, err)

	var back FNT
	require.NoError(t, back.DecodeXML(xmlRaw))
	assert.Equal(t, expected, back.Encode())
}

func TestDecodeXMLHeaderCountNotTrusted(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<FfntFile>
  <Entries>
    <FfntEntry xsi:type="GlyphMap">
      <Header Unknown="0" GlyphWidth1="16" GlyphWidth2="16" GlyphHeight1="16" GlyphHeight2="16" GlyphCount="99"/>
      <Glyphs>
        <Glyph Character="A" XOffset="3" YOffset="5" Unknown1="0" Unknown2="0" Unknown3="0" UnknownPadding1="0" UnknownPadding2="0"/>
      </Glyphs>
    </FfntEntry>
  </Entries>
</FfntFile>`

	var fnt FNT
	require.NoError(t, fnt.DecodeXML([]byte(doc)))
	require.Len(t, fnt.Glyphs, 1)
	assert.Equal(t, uint16(1), fnt.Header.GlyphCount, "the glyph list, not the attribute, is authoritative")
	assert.Empty(t, fnt.TrailingBytes, "absent trailing element decodes to empty")
}

func TestDecodeXMLInvalidFormat(t *testing.T) {
	const headerOK = `<Header Unknown="0" GlyphWidth1="16" GlyphWidth2="16" GlyphHeight1="16" GlyphHeight2="16" GlyphCount="1"/>`

	cases := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			"wrong root",
			`<SomethingElse/>`,
			"FfntFile root element",
		},
		{
			"missing entries",
			`<FfntFile></FfntFile>`,
			"missing Entries",
		},
		{
			"missing glyph map entry",
			`<FfntFile><Entries></Entries></FfntFile>`,
			"missing GlyphMap FfntEntry",
		},
		{
			"missing header",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap"><Glyphs></Glyphs></FfntEntry></Entries></FfntFile>`,
			"missing Header",
		},
		{
			"missing glyphs",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` + headerOK + `</FfntEntry></Entries></FfntFile>`,
			"missing Glyphs",
		},
		{
			"missing header attribute",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap"><Header Unknown="0"/><Glyphs></Glyphs></FfntEntry></Entries></FfntFile>`,
			"missing GlyphWidth1",
		},
		{
			"unparseable header attribute",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap"><Header Unknown="banana" GlyphWidth1="16" GlyphWidth2="16" GlyphHeight1="16" GlyphHeight2="16" GlyphCount="1"/><Glyphs></Glyphs></FfntEntry></Entries></FfntFile>`,
			"Unknown attribute",
		},
		{
			"missing character",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` + headerOK + `<Glyphs><Glyph XOffset="3" YOffset="5" Unknown1="0" Unknown2="0" Unknown3="0" UnknownPadding1="0" UnknownPadding2="0"/></Glyphs></FfntEntry></Entries></FfntFile>`,
			"missing Character",
		},
		{
			"empty character",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` + headerOK + `<Glyphs><Glyph Character="" XOffset="3" YOffset="5" Unknown1="0" Unknown2="0" Unknown3="0" UnknownPadding1="0" UnknownPadding2="0"/></Glyphs></FfntEntry></Entries></FfntFile>`,
			"empty Character",
		},
		{
			"unparseable character",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` + headerOK + `<Glyphs><Glyph Character="notaglyph" XOffset="3" YOffset="5" Unknown1="0" Unknown2="0" Unknown3="0" UnknownPadding1="0" UnknownPadding2="0"/></Glyphs></FfntEntry></Entries></FfntFile>`,
			"notaglyph",
		},
		{
			"signed value in unsigned attribute",
			`<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` + headerOK + `<Glyphs><Glyph Character="A" XOffset="-3" YOffset="5" Unknown1="0" Unknown2="0" Unknown3="0" UnknownPadding1="0" UnknownPadding2="0"/></Glyphs></FfntEntry></Entries></FfntFile>`,
			"XOffset",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var fnt FNT
			err := fnt.DecodeXML([]byte(c.doc))
			var invalid *InvalidFormatError
			require.ErrorAs(t, err, &invalid, "doc: %s", c.doc)
			assert.Contains(t, err.Error(), c.expected)
		})
	}
}

func TestDecodeXMLBadBase64(t *testing.T) {
	doc := `<FfntFile><Entries><FfntEntry xsi:type="GlyphMap">` +
		`<Header Unknown="0" GlyphWidth1="16" GlyphWidth2="16" GlyphHeight1="16" GlyphHeight2="16" GlyphCount="0"/>` +
		`<Glyphs></Glyphs>` +
		`<TrailingBytesBase64>@@not base64@@</TrailingBytesBase64>` +
		`</FfntEntry></Entries></FfntFile>`

	var fnt FNT
	err := fnt.DecodeXML([]byte(doc))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Text, "@@not base64@@")
}
