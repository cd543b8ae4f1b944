package textfile

import (
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// textEncoding is the detected byte encoding of a file's content.
// A nil enc means UTF-8 pass-through.
type textEncoding struct {
	name string
	enc  encoding.Encoding
}

// decode detects the encoding of raw and returns the content as UTF-8
// together with the encoding to use when writing back.
//
// Valid UTF-8 (which covers plain ASCII) passes through unchanged; only
// non-UTF-8 content goes through statistical charset detection.
func decode(raw []byte) (string, textEncoding, error) {
	if utf8.Valid(raw) {
		return string(raw), textEncoding{name: "UTF-8"}, nil
	}

	best, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return "", textEncoding{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	enc, err := ianaindex.IANA.Encoding(best.Charset)
	if err != nil || enc == nil {
		return "", textEncoding{}, fmt.Errorf("%w: unsupported charset %q", ErrDecode, best.Charset)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", textEncoding{}, fmt.Errorf("%w: decode as %s: %v", ErrDecode, best.Charset, err)
	}

	return string(decoded), textEncoding{name: best.Charset, enc: enc}, nil
}

// encode serializes content back into the originally detected encoding.
func (e textEncoding) encode(content string) ([]byte, error) {
	if e.enc == nil {
		return []byte(content), nil
	}
	return e.enc.NewEncoder().Bytes([]byte(content))
}
