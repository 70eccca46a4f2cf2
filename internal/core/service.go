package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JonMunkholm/questionnaire/internal/logging"
)

// Result is the outcome of one conversion.
type Result struct {
	Questionnaire *Questionnaire
	Pretty        string // Indented form for display
	Compact       string // Machine-readable carry-forward form
	Encoding      Detection
	RowsRead      int
	SkippedLines  []int
	Duration      time.Duration
}

// Converter runs the CSV to questionnaire pipeline. It holds no per-request
// state and may be shared between requests.
type Converter struct {
	detector EncodingDetector
	parser   RowParser
	mapper   *Mapper
	logger   *slog.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithDetector replaces the encoding detector.
func WithDetector(d EncodingDetector) ConverterOption {
	return func(c *Converter) { c.detector = d }
}

// WithParser replaces the row parser.
func WithParser(p RowParser) ConverterOption {
	return func(c *Converter) { c.parser = p }
}

// WithTypeTable replaces the type translation table.
func WithTypeTable(t TypeTable) ConverterOption {
	return func(c *Converter) { c.mapper = NewMapper(t) }
}

// WithLogger sets a fixed logger. Without one, the request-scoped logger
// from the context is used.
func WithLogger(l *slog.Logger) ConverterOption {
	return func(c *Converter) { c.logger = l }
}

// NewConverter creates a Converter with chardet detection, the CSV parser
// and the default type table, then applies opts.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		detector: NewChardetDetector(0),
		parser:   CSVRowParser{},
		mapper:   NewMapper(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert turns raw uploaded bytes into a questionnaire document.
//
// Errors wrap ErrEncodingUndetected, ErrEncodingDecode or ErrMalformedCSV.
// Rows without linkId, text or type are skipped and only logged.
func (c *Converter) Convert(ctx context.Context, raw []byte) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	detection, err := c.detector.Detect(raw)
	if err != nil {
		return nil, err
	}

	text, err := Decode(raw, detection.Charset)
	if err != nil {
		return nil, err
	}

	rows, err := c.parser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	items, skipped := c.mapper.MapRows(rows)
	doc := Assemble(items)

	pretty, err := doc.MarshalIndent()
	if err != nil {
		return nil, err
	}
	compact, err := doc.MarshalCompact()
	if err != nil {
		return nil, err
	}

	logger := c.loggerFor(ctx)
	if len(skipped) > 0 {
		logger.Debug("skipped rows missing linkId, text or type",
			"lines", skipped,
		)
	}

	result := &Result{
		Questionnaire: doc,
		Pretty:        string(pretty),
		Compact:       string(compact),
		Encoding:      detection,
		RowsRead:      len(rows),
		SkippedLines:  skipped,
		Duration:      time.Since(start),
	}

	logger.Info("questionnaire converted",
		"encoding", detection.Charset,
		"confidence", detection.Confidence,
		"rows", result.RowsRead,
		"items", len(items),
		"skipped", len(skipped),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

func (c *Converter) loggerFor(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}
