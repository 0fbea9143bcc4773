// Package models defines the per-user settings for PDF generation.
package models

import (
	"errors"
	"strings"
)

// Settings validation errors. Handlers translate these into user-facing text.
var (
	// ErrInvalidName indicates a filename that is empty after sanitization
	// or contains path separators.
	ErrInvalidName = errors.New("invalid filename")
	// ErrInvalidEnum indicates an unrecognized enum value.
	ErrInvalidEnum = errors.New("unrecognized value")
	// ErrOutOfRange indicates a compression quality outside [1,95].
	ErrOutOfRange = errors.New("value out of range")
)

// Compression quality bounds for embedded JPEG images.
const (
	MinCompressionQuality = 1
	MaxCompressionQuality = 95
)

// WatermarkPosition is the anchor for the watermark overlay on each page.
type WatermarkPosition string

// Recognized watermark positions.
const (
	WatermarkBottomRight WatermarkPosition = "bottomright"
	WatermarkTopLeft     WatermarkPosition = "topleft"
	WatermarkCenter      WatermarkPosition = "center"
)

// PageSize is a named physical page dimension preset.
type PageSize string

// Recognized page sizes.
const (
	PageA3      PageSize = "A3"
	PageA4      PageSize = "A4"
	PageA5      PageSize = "A5"
	PageLetter  PageSize = "Letter"
	PageLegal   PageSize = "Legal"
	PageTabloid PageSize = "Tabloid"
)

// Settings holds one user's PDF formatting options.
// Filename is stored without the .pdf extension.
type Settings struct {
	Filename           string
	WatermarkText      string
	WatermarkPos       WatermarkPosition
	CompressionQuality int
	PageSize           PageSize
}

// DefaultSettings returns the settings applied to a fresh session.
func DefaultSettings() Settings {
	return Settings{
		Filename:           "output",
		WatermarkPos:       WatermarkBottomRight,
		CompressionQuality: 85,
		PageSize:           PageA4,
	}
}

// OutputFilename returns the filename used for the generated document.
func (s *Settings) OutputFilename() string {
	return s.Filename + ".pdf"
}

// SetFilename sanitizes and stores the output filename (without extension).
// Names containing path separators, or empty after sanitization, are rejected.
func (s *Settings) SetFilename(name string) error {
	if strings.ContainsAny(name, "/\\") {
		return ErrInvalidName
	}

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		}
	}

	safe := strings.TrimSpace(strings.TrimSuffix(sb.String(), ".pdf"))
	safe = strings.Trim(safe, ".")
	if safe == "" {
		return ErrInvalidName
	}

	s.Filename = safe
	return nil
}

// SetWatermark stores the watermark text. An empty string clears the
// watermark. A literal "\n" in the text becomes a line break.
func (s *Settings) SetWatermark(text string) {
	s.WatermarkText = strings.ReplaceAll(text, `\n`, "\n")
}

// SetWatermarkPosition parses and stores the watermark anchor.
// Accepts the short aliases br/tl/c alongside the full names.
func (s *Settings) SetWatermarkPosition(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "br", "bottomright", "bottom-right":
		s.WatermarkPos = WatermarkBottomRight
	case "tl", "topleft", "top-left":
		s.WatermarkPos = WatermarkTopLeft
	case "c", "center", "centre":
		s.WatermarkPos = WatermarkCenter
	default:
		return ErrInvalidEnum
	}
	return nil
}

// SetCompression stores the JPEG quality. Out-of-range values are rejected,
// not clamped.
func (s *Settings) SetCompression(quality int) error {
	if quality < MinCompressionQuality || quality > MaxCompressionQuality {
		return ErrOutOfRange
	}
	s.CompressionQuality = quality
	return nil
}

// SetPageSize parses and stores the page size preset (case-insensitive).
func (s *Settings) SetPageSize(value string) error {
	size, err := ParsePageSize(value)
	if err != nil {
		return err
	}
	s.PageSize = size
	return nil
}

// ParsePageSize maps a user-supplied string onto a PageSize.
func ParsePageSize(value string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "a3":
		return PageA3, nil
	case "a4":
		return PageA4, nil
	case "a5":
		return PageA5, nil
	case "letter":
		return PageLetter, nil
	case "legal":
		return PageLegal, nil
	case "tabloid":
		return PageTabloid, nil
	default:
		return "", ErrInvalidEnum
	}
}
