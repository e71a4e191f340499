package errors

import (
	"math"
	"os"
	"strings"
	"unicode"
)

// Limits on user-supplied render parameters. The CLI and the server share
// them so that a request accepted by one is accepted by the other.
const (
	MaxSites      = 100_000
	MaxDimension  = 16_384
	MaxScale      = 16.0
	MaxWorkers    = 1024
	maxPathLength = 500
)

// ValidateSiteCount checks the size of a random site list, which must hold
// at least one site.
func ValidateSiteCount(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidSites, "site count must be positive, got %d", n)
	}
	return ValidateSiteList(n)
}

// ValidateSiteList checks the size of an explicit site list. Empty lists are
// valid and render white.
func ValidateSiteList(n int) error {
	if n > MaxSites {
		return New(ErrCodeInvalidSites, "%d sites exceed the maximum of %d", n, MaxSites)
	}
	return nil
}

// ValidateCoordinates rejects NaN and infinite site coordinates. index is the
// site's position in its list and appears in the message.
func ValidateCoordinates(index int, x, y float64) error {
	if !isFinite(x) || !isFinite(y) {
		return New(ErrCodeInvalidSites, "site %d has a non-finite coordinate (%g, %g)", index, x, y)
	}
	return nil
}

// ValidateDimensions rejects rasters wider or taller than MaxDimension.
// Non-positive sizes pass: rendering them is a no-op.
func ValidateDimensions(width, height int) error {
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "dimensions %dx%d exceed the maximum of %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateScale accepts 0 (unscaled) or a finite factor up to MaxScale.
func ValidateScale(scale float64) error {
	if !isFinite(scale) {
		return New(ErrCodeInvalidInput, "scale must be a finite number")
	}
	if scale < 0 || scale > MaxScale {
		return New(ErrCodeInvalidInput, "scale must be between 0 and %g, got %g", MaxScale, scale)
	}
	return nil
}

// ValidateWorkers accepts 0 (one per CPU) up to MaxWorkers.
func ValidateWorkers(n int) error {
	switch {
	case n < 0:
		return New(ErrCodeInvalidInput, "workers cannot be negative, got %d", n)
	case n > MaxWorkers:
		return New(ErrCodeInvalidInput, "too many workers (max %d)", MaxWorkers)
	}
	return nil
}

// ValidateOutputPath checks a path an image or site file is about to be
// written to. It must be non-empty, printable, and name a file rather than a
// directory.
func ValidateOutputPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	case strings.ContainsFunc(path, unicode.IsControl):
		return New(ErrCodeInvalidPath, "output path contains control characters")
	case strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)):
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
