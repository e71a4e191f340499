package errors

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// check asserts that err is nil when ok, and otherwise carries code.
func check(t *testing.T, err error, ok bool, code Code, msgAndArgs ...any) {
	t.Helper()
	if ok {
		assert.NoError(t, err, msgAndArgs...)
		return
	}
	if assert.Error(t, err, msgAndArgs...) {
		assert.Equal(t, code, GetCode(err), msgAndArgs...)
	}
}

func TestValidateSiteCounts(t *testing.T) {
	for n, ok := range map[int]bool{1: true, 50: true, MaxSites: true, 0: false, -3: false, MaxSites + 1: false} {
		check(t, ValidateSiteCount(n), ok, ErrCodeInvalidSites, "ValidateSiteCount(%d)", n)
	}
	for n, ok := range map[int]bool{0: true, 7: true, MaxSites: true, MaxSites + 1: false} {
		check(t, ValidateSiteList(n), ok, ErrCodeInvalidSites, "ValidateSiteList(%d)", n)
	}
}

func TestValidateCoordinates(t *testing.T) {
	check(t, ValidateCoordinates(0, 12.5, -3), true, "")
	check(t, ValidateCoordinates(0, 0, 1e300), true, "")

	err := ValidateCoordinates(4, math.NaN(), 2)
	check(t, err, false, ErrCodeInvalidSites)
	assert.Contains(t, err.Error(), "site 4")

	check(t, ValidateCoordinates(1, 3, math.Inf(-1)), false, ErrCodeInvalidSites)
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
	}{
		{800, 600, true},
		{0, 0, true},
		{-5, 10, true},
		{MaxDimension, MaxDimension, true},
		{MaxDimension + 1, 10, false},
		{10, MaxDimension + 1, false},
	}
	for _, tt := range tests {
		check(t, ValidateDimensions(tt.w, tt.h), tt.ok, ErrCodeInvalidDimensions, "%dx%d", tt.w, tt.h)
	}
}

func TestValidateScale(t *testing.T) {
	valid := []float64{0, 0.5, 2, MaxScale}
	invalid := []float64{-1, MaxScale + 0.1, math.NaN(), math.Inf(1)}
	for _, s := range valid {
		check(t, ValidateScale(s), true, "", "scale %v", s)
	}
	for _, s := range invalid {
		check(t, ValidateScale(s), false, ErrCodeInvalidInput, "scale %v", s)
	}
}

func TestValidateWorkers(t *testing.T) {
	for n, ok := range map[int]bool{0: true, 1: true, MaxWorkers: true, -1: false, MaxWorkers + 1: false} {
		check(t, ValidateWorkers(n), ok, ErrCodeInvalidInput, "workers %d", n)
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := map[string]bool{
		"voronoi.png":            true,
		"out/voronoi.bmp":        true,
		"/tmp/diagram.tiff":      true,
		"sites.toml":             true,
		"":                       false,
		strings.Repeat("a", 600): false,
		"foo\x00bar.png":         false,
		"foo\nbar.png":           false,
		"out/":                   false,
	}
	for path, ok := range tests {
		check(t, ValidateOutputPath(path), ok, ErrCodeInvalidPath, "path %q", path)
	}
}
