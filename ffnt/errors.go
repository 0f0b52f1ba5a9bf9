package ffnt

import "fmt"

// TooSmallError means the binary input is shorter than the fixed 12-byte
// header.
type TooSmallError struct {
	Size int
}

func (err *TooSmallError) Error() string {
	return fmt.Sprintf("file too small: %d bytes, need at least %d for the header", err.Size, HEADER_SIZE)
}

// TruncatedError means the header declared more glyph records than the input
// actually contains.
type TruncatedError struct {
	GlyphCount int
	Required   int
	Size       int
}

func (err *TruncatedError) Error() string {
	return fmt.Sprintf("truncated glyph table: header declares %d glyphs (%d bytes required) but file is %d bytes",
		err.GlyphCount, err.Required, err.Size)
}

// InvalidFormatError reports a structural problem in the XML form: a missing
// element or attribute, or attribute text that does not parse.
type InvalidFormatError struct {
	Expected string
	Err      error
}

func (err *InvalidFormatError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("invalid FfntFile XML: %s: %v", err.Expected, err.Err)
	}
	return fmt.Sprintf("invalid FfntFile XML: %s", err.Expected)
}

func (err *InvalidFormatError) Unwrap() error {
	return err.Err
}

// DecodeError reports malformed base64 in the trailing-bytes element.
type DecodeError struct {
	Text string
	Err  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode trailing bytes %q: %v", err.Text, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}
