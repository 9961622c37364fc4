package imageprocessor

import (
	"os"
	"path/filepath"
	"strings"
)

// FormatType represents an accepted image format
type FormatType string

// Accepted image format constants
const (
	FormatUnknown FormatType = "unknown"
	FormatJPEG    FormatType = "jpeg"
	FormatPNG     FormatType = "png"
	FormatGIF     FormatType = "gif"
	FormatTIFF    FormatType = "tiff"
	FormatBMP     FormatType = "bmp"
)

// Map of allowed extensions to format types
var formatExtensions = map[string]FormatType{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".gif":  FormatGIF,
}

// IsValidExtension reports whether the path ends in an allowed image
// extension, ignoring case
func IsValidExtension(path string) bool {
	_, ok := formatExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	format, ok := formatExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return FormatUnknown
	}
	return format
}

// IsValidImage checks the extension allow-list and that the path exists
func IsValidImage(path string) bool {
	return IsValidExtension(path) && fileExists(path)
}

// fileExists checks if a path exists and is accessible
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
