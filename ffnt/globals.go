package ffnt

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

var (
	Debug bool
)

const (
	// number of bytes for each fixed structure
	HEADER_SIZE       = 12
	GLYPH_RECORD_SIZE = 16
)

// Just a wrapper around binary.Write. The FNT wire format is little-endian
// regardless of host byte order.
func binaryWrite(w *bufio.Writer, data interface{}) {
	err := binary.Write(w, binary.LittleEndian, data)
	if err != nil {
		// writing to an in-memory buffer cannot fail
		panic(err)
	}

	// just call every time. its easy to forget and end up with missing bytes
	w.Flush()
}

func pprint(s interface{}) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s\n", string(jsonBytes))
}
