package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CompatMaxRecords is the record cap of the fixed-capacity loader that
// countyq's output is compared against.
const CompatMaxRecords = 1000

var (
	// ErrEmptyInput is returned when the input has no header line.
	ErrEmptyInput = errors.New("file is empty or malformed")

	// ErrUnsupportedEncoding is returned for an unknown Options.Encoding.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// Options configures ingestion. The zero value reads UTF-8 input without a
// record cap.
type Options struct {
	// MaxRecords stops ingestion once this many records were read. Zero
	// means unlimited.
	MaxRecords int

	// SkipFirstRecord drops the first data row after the header, as the
	// fixed-capacity loader did.
	SkipFirstRecord bool

	// LegacyTokenizer splits each CSV line on every comma and drops empty
	// tokens instead of decoding RFC 4180 fields. Quoted commas then shift
	// the columns after them. Records carry no source line.
	LegacyTokenizer bool

	// Encoding of CSV input: "utf8" (default, BOM stripped), "latin1" or
	// "windows-1252".
	Encoding string

	// WarnNumeric logs every numeric cell that did not convert completely.
	// Such cells still convert leniently.
	WarnNumeric bool

	// Logger receives ingestion diagnostics. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// decoder wraps r so that it yields UTF-8 text.
func (o Options) decoder(r io.Reader) (io.Reader, error) {
	switch strings.ToLower(o.Encoding) {
	case "", "utf8", "utf-8":
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, o.Encoding)
	}
}

// ValidEncoding reports whether name is accepted by Options.Encoding.
func ValidEncoding(name string) bool {
	_, err := Options{Encoding: name}.decoder(strings.NewReader(""))
	return err == nil
}
