package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Yazed0071/fntTool/ffnt"
)

const (
	binaryExt = ".fnt"
	xmlExt    = ".xml"
)

// ConvertFile converts a single file based on its extension: .fnt becomes a
// sibling .xml, .xml becomes a sibling .fnt, anything else is skipped. The
// output is built fully in memory before anything is written, so a failed
// conversion never leaves a half-written file behind.
func ConvertFile(path string) (outPath string, skipped bool, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case binaryExt:
		outPath = siblingPath(path, xmlExt)
		return outPath, false, convertBinaryToXML(path, outPath)
	case xmlExt:
		outPath = siblingPath(path, binaryExt)
		return outPath, false, convertXMLToBinary(path, outPath)
	default:
		return "", true, nil
	}
}

func convertBinaryToXML(path, outPath string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fnt ffnt.FNT
	if err := fnt.Decode(raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	xmlRaw, err := fnt.EncodeXML()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return os.WriteFile(outPath, xmlRaw, 0644)
}

func convertXMLToBinary(path, outPath string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fnt ffnt.FNT
	if err := fnt.DecodeXML(raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return os.WriteFile(outPath, fnt.Encode(), 0644)
}

// siblingPath swaps the extension, whatever case the original one had.
func siblingPath(path, newExt string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + newExt
}
