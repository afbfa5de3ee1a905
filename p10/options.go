package p10

import "github.com/go-playground/validator/v10"

// ParserOptions configures a Parser's limits. The zero value is not valid;
// use DefaultParserOptions and override individual fields.
type ParserOptions struct {
	// MaxElementLength bounds a single element's declared payload length.
	// Defaults to 4294967294 (0xFFFFFFFE), the largest defined length value
	// (0xFFFFFFFF is reserved for "undefined").
	MaxElementLength uint32 `validate:"required,lte=4294967294"`
	// ChunkSize bounds how many value bytes the parser buffers before
	// yielding a DataElementValueBytes part, so a multi-gigabyte pixel data
	// element never forces the whole value into memory at once.
	ChunkSize int `validate:"required,gt=0"`
}

// DefaultParserOptions returns the options used when Parser is constructed
// via NewParser with no overrides.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		MaxElementLength: 4294967294,
		ChunkSize:        1 << 20,
	}
}

var optionsValidator = validator.New()

// Validate reports whether opts satisfies its struct-tag constraints.
func (opts ParserOptions) Validate() error {
	return optionsValidator.Struct(opts)
}

// WriterOptions configures a Writer. The zero value is not valid; use
// DefaultWriterOptions and override individual fields.
type WriterOptions struct {
	// ChunkSize must be positive (Validate checks it). Writer does not
	// otherwise use it: WritePart accepts DataElementValueBytes parts of any
	// size.
	ChunkSize int `validate:"required,gt=0"`
}

// DefaultWriterOptions returns the options used when Writer is constructed
// via NewWriter with no overrides.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{ChunkSize: 1 << 20}
}

// Validate reports whether opts satisfies its struct-tag constraints.
func (opts WriterOptions) Validate() error {
	return optionsValidator.Struct(opts)
}
