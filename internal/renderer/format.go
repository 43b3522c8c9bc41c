package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Format is the container format of a presentation file
type Format int

const (
	FormatUnknown Format = iota
	FormatOOXML          // .pptx, zip container
	FormatLegacy         // .ppt, OLE2 compound file
)

var ErrUnsupportedFormat = errors.New("not a PowerPoint presentation")

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs the file signature instead of trusting the extension
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open presentation: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(oleMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("read presentation header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return FormatOOXML, nil
	case bytes.HasPrefix(head, oleMagic):
		return FormatLegacy, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}
