package render

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// Formats lists the supported formats in display order.
var Formats = []string{FormatPNG, FormatBMP, FormatTIFF}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
}

// NormalizeFormat lowercases format and maps "tif" to "tiff".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "tif" {
		return FormatTIFF
	}
	return f
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if _, ok := contentTypes[NormalizeFormat(format)]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ContentType returns the MIME type for format, or application/octet-stream.
func ContentType(format string) string {
	if ct, ok := contentTypes[NormalizeFormat(format)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Option configures Encode.
type Option func(*config)

type config struct {
	scale   float64
	markers []voronoi.Point
	radius  float64
}

// WithScale resamples the image by factor f before encoding. Zero and one
// leave the size unchanged.
func WithScale(f float64) Option {
	return func(c *config) { c.scale = f }
}

// WithMarkers draws a filled black circle of the given radius at each point.
// Positions are in raster coordinates and follow any scaling; the radius does
// not scale.
func WithMarkers(points []voronoi.Point, radius float64) Option {
	return func(c *config) {
		c.markers = points
		c.radius = radius
	}
}

// Encode renders buf in the given format.
func Encode(buf *voronoi.Buffer, format string, opts ...Option) ([]byte, error) {
	var out bytes.Buffer
	if err := EncodeTo(&out, buf, format, opts...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeTo writes buf to w in the given format.
func EncodeTo(w io.Writer, buf *voronoi.Buffer, format string, opts ...Option) error {
	format = NormalizeFormat(format)
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "nothing to encode: empty raster")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := errors.ValidateScale(cfg.scale); err != nil {
		return err
	}

	var img image.Image = buf.Image()
	factor := 1.0
	if cfg.scale != 0 && cfg.scale != 1 {
		factor = cfg.scale
		img = resample(img, factor)
	}
	if len(cfg.markers) > 0 && cfg.radius > 0 {
		var err error
		if img, err = drawMarkers(img, cfg.markers, cfg.radius, factor); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "draw site markers")
		}
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}

func resample(src image.Image, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	var scaler draw.Scaler = draw.CatmullRom
	if factor > 1 {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func drawMarkers(img image.Image, points []voronoi.Point, radius, factor float64) (image.Image, error) {
	dc := gg.NewContextForImage(img)
	defer dc.Close()

	dc.SetRGB(0, 0, 0)
	for _, p := range points {
		dc.DrawCircle(p.X*factor, p.Y*factor, radius)
	}
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}
