package bough

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches its sentinel with errors.Is.
var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("bough: not found")

	// ErrInvalidFormat is matched by every *InvalidFormatError.
	ErrInvalidFormat = errors.New("bough: invalid format")

	// ErrUnsupportedCombination is matched by every *UnsupportedCombinationError.
	ErrUnsupportedCombination = errors.New("bough: unsupported combination")

	// ErrInvalidGlyph is matched by every *InvalidGlyphError.
	ErrInvalidGlyph = errors.New("bough: invalid glyph")

	// ErrShutdown is returned by runtime operations after Shutdown.
	ErrShutdown = errors.New("bough: runtime is shut down")

	// ErrDisposed is returned when attaching under a disposed parent.
	ErrDisposed = errors.New("bough: visual is disposed")

	// ErrOutOfRange is returned for list indices past the end.
	ErrOutOfRange = errors.New("bough: index out of range")
)

// NotFoundError reports a missing sprite, atlas, font, font page, shader or layer.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bough: %s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidFormatError reports a malformed atlas or font description.
// Line is 1-based; 0 means the whole source.
type InvalidFormatError struct {
	Source string
	Line   int
	Reason string
	Err    error
}

func (e *InvalidFormatError) Error() string {
	msg := "bough: " + e.Source
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

func (e *InvalidFormatError) Is(target error) bool { return target == ErrInvalidFormat }

// UnsupportedCombinationError reports a rotate/flip requested on a sprite
// that is sliced or tiled.
type UnsupportedCombinationError struct {
	RotateFlip RotateFlip
	Reason     string
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("bough: rotate/flip %#x unsupported: %s", uint8(e.RotateFlip), e.Reason)
}

func (e *UnsupportedCombinationError) Is(target error) bool {
	return target == ErrUnsupportedCombination
}

// InvalidGlyphError reports a character with no glyph and no '?' fallback.
type InvalidGlyphError struct {
	Font string
	Char rune
}

func (e *InvalidGlyphError) Error() string {
	return fmt.Sprintf("bough: font %q has no glyph for %U and no '?' fallback", e.Font, e.Char)
}

func (e *InvalidGlyphError) Is(target error) bool { return target == ErrInvalidGlyph }
