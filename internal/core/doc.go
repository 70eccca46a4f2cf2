// Package core provides the business logic for turning survey CSV files into
// questionnaire documents.
//
// This package holds all conversion logic independent of any UI or transport
// layer. It is used by the web handlers, the qconvert CLI and tests without
// modification.
//
// # Pipeline
//
// A conversion runs once per uploaded file, synchronously:
//
//  1. [EncodingDetector] guesses the text encoding of the raw bytes
//  2. [Decode] turns the bytes into UTF-8 text using that guess
//  3. [RowParser] reads the header-driven CSV into typed [Row] values
//  4. [Mapper] turns every valid row into an [Item]
//  5. [Assemble] wraps the items into a [Questionnaire]
//
// [Converter] wires the steps together and is the entry point for callers.
//
// # Rows
//
// A row needs non-empty linkId, text and type cells. Rows missing any of the
// three are skipped without error; [Row.Valid] is the only place that rule
// lives.
//
// # Types
//
// The type cell is translated through a [TypeTable]. Labels not in the table
// pass through unchanged. Choice-like types pick up answer options from the
// options cell, and integer items carry inputType "number".
//
// # Error Handling
//
// Every failure category has a sentinel error, and [MapError] turns any error
// into a [UserMessage] with a support code:
//
//   - FILE001-FILE005: upload errors (size, encoding, CSV format, missing file)
//   - SUB001-SUB006: submission errors (payload, remote status, transport)
//   - ERR000: anything else
package core
