package ffnt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

func isSurrogate(c uint16) bool {
	return c >= surrogateMin && c <= surrogateMax
}

// EncodeChar renders a 16-bit code unit as attribute text. Printable
// characters stay literal; surrogate halves, control characters and code
// units XML cannot carry get a canonical escape so the text stays
// machine-exact.
func EncodeChar(c uint16) string {
	if isSurrogate(c) {
		// not independently valid scalars, never emitted literally
		return fmt.Sprintf(`\u%04X`, c)
	}

	if unicode.IsControl(rune(c)) {
		switch c {
		case 0x0009:
			return `\t`
		case 0x000A:
			return `\n`
		case 0x000D:
			return `\r`
		}
		return fmt.Sprintf(`\u%04X`, c)
	}

	// 0xFFFE and 0xFFFF are not controls but are not legal XML characters
	// either; emitted literally the XML writer would mangle them to U+FFFD.
	if c >= 0xFFFE {
		return fmt.Sprintf(`\u%04X`, c)
	}

	return string(rune(c))
}

// DecodeChar is the reverse of EncodeChar. Recognized forms, first match
// wins: a single literal character, the named escapes \t \n \r, \uXXXX,
// U+XXXX, 0x hex, plain decimal. Values in the surrogate range are rejected
// no matter which form produced them.
func DecodeChar(text string) (uint16, error) {
	if c, ok := decodeCharText(text); ok {
		if isSurrogate(c) {
			return 0, fmt.Errorf("cannot parse character %q: lone surrogate", text)
		}
		return c, nil
	}
	return 0, fmt.Errorf("cannot parse character %q", text)
}

func decodeCharText(text string) (uint16, bool) {
	// A single character always means itself, before any numeric reading.
	// Whitespace counts: " " is the space glyph, so the raw text is checked
	// first and only the multi-character forms use the trimmed text.
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		if r > 0xFFFF {
			return 0, false // needs a surrogate pair, not one code unit
		}
		return uint16(r), true
	}

	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case `\t`:
		return 0x0009, true
	case `\n`:
		return 0x000A, true
	case `\r`:
		return 0x000D, true
	}

	if len(trimmed) == 6 && trimmed[0] == '\\' && (trimmed[1] == 'u' || trimmed[1] == 'U') {
		if v, err := strconv.ParseUint(trimmed[2:], 16, 16); err == nil {
			return uint16(v), true
		}
	}

	if len(trimmed) == 6 && (trimmed[0] == 'U' || trimmed[0] == 'u') && trimmed[1] == '+' {
		if v, err := strconv.ParseUint(trimmed[2:], 16, 16); err == nil {
			return uint16(v), true
		}
	}

	if len(trimmed) >= 3 && len(trimmed) <= 6 && trimmed[0] == '0' && (trimmed[1] == 'x' || trimmed[1] == 'X') {
		if v, err := strconv.ParseUint(trimmed[2:], 16, 16); err == nil {
			return uint16(v), true
		}
	}

	if v, err := strconv.ParseUint(trimmed, 10, 16); err == nil {
		return uint16(v), true
	}

	return 0, false
}
