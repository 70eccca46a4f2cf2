package core

// encoding.go detects and decodes the text encoding of uploaded files.
//
// Survey files come out of spreadsheet tools in whatever encoding the
// author's locale uses (Big5, GB18030, Shift_JIS, UTF-8 with or without BOM).
// Detection is a guess; decoding with the guess can still fail, and the two
// failures are reported with different sentinels.

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// utf8BOM is the byte order mark some Windows tools prepend to UTF-8 files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detection is the outcome of an encoding guess.
type Detection struct {
	Charset    string // Encoding name as reported by the detector
	Confidence int    // 0-100
}

// EncodingDetector guesses the text encoding of raw bytes.
type EncodingDetector interface {
	Detect(raw []byte) (Detection, error)
}

// ChardetDetector guesses encodings with the ICU-derived chardet recognizers.
type ChardetDetector struct {
	detector      *chardet.Detector
	minConfidence int
}

// NewChardetDetector creates a detector that rejects guesses below
// minConfidence (0-100). Zero accepts any guess.
func NewChardetDetector(minConfidence int) *ChardetDetector {
	return &ChardetDetector{
		detector:      chardet.NewTextDetector(),
		minConfidence: minConfidence,
	}
}

// Detect returns the best encoding guess for raw.
// Returns ErrEncodingUndetected for empty input, when no recognizer matches,
// or when the best guess is below the configured confidence.
func (d *ChardetDetector) Detect(raw []byte) (Detection, error) {
	if len(raw) == 0 {
		return Detection{}, fmt.Errorf("%w: empty file", ErrEncodingUndetected)
	}

	// A BOM is authoritative; chardet only scores it, and short files can
	// lose to a single-byte recognizer.
	if bytes.HasPrefix(raw, utf8BOM) {
		return Detection{Charset: "UTF-8", Confidence: 100}, nil
	}

	result, err := d.detector.DetectBest(raw)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrEncodingUndetected, err)
	}
	if result == nil || result.Charset == "" {
		return Detection{}, ErrEncodingUndetected
	}
	if result.Confidence < d.minConfidence {
		return Detection{}, fmt.Errorf("%w: best guess %s at confidence %d is below %d",
			ErrEncodingUndetected, result.Charset, result.Confidence, d.minConfidence)
	}

	return Detection{Charset: result.Charset, Confidence: result.Confidence}, nil
}

// charsetAliases maps detector names that the WHATWG index spells differently.
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
}

// lookupEncoding resolves an encoding name to a decoder source.
func lookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := charsetAliases[key]; ok {
		key = alias
	}

	switch key {
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), nil
	}

	return htmlindex.Get(key)
}

// Decode converts raw bytes in the named encoding to UTF-8 text.
// A leading byte order mark is removed. Returns ErrEncodingDecode when the
// encoding is unknown or the bytes are malformed for it.
func Decode(raw []byte, charset string) (string, error) {
	if strings.EqualFold(charset, "UTF-8") {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: invalid UTF-8 byte sequence", ErrEncodingDecode)
		}
		return string(raw), nil
	}

	enc, err := lookupEncoding(charset)
	if err != nil {
		return "", fmt.Errorf("%w: unsupported encoding %q", ErrEncodingDecode, charset)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncodingDecode, charset, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: %s produced invalid UTF-8", ErrEncodingDecode, charset)
	}

	return strings.TrimPrefix(string(decoded), "\ufeff"), nil
}
