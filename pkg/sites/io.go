package sites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// File extensions recognised by Read and Write.
const (
	ExtJSON = ".json"
	ExtTOML = ".toml"
)

type file struct {
	Sites []voronoi.Point `json:"sites" toml:"sites"`
}

// ReadJSON decodes a JSON site list from r.
func ReadJSON(r io.Reader) ([]voronoi.Point, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSites, err, "decode json site list")
	}
	return validate(f.Sites)
}

// ReadTOML decodes a TOML site list from r.
func ReadTOML(r io.Reader) ([]voronoi.Point, error) {
	var f file
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSites, err, "decode toml site list")
	}
	return validate(f.Sites)
}

func validate(points []voronoi.Point) ([]voronoi.Point, error) {
	if err := errors.ValidateSiteList(len(points)); err != nil {
		return nil, err
	}
	for i, p := range points {
		if err := errors.ValidateCoordinates(i, p.X, p.Y); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// Read opens the site file at path and decodes it by extension.
func Read(path string) ([]voronoi.Point, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "site file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	points, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

func decoderFor(path string) (func(io.Reader) ([]voronoi.Point, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		return ReadJSON, nil
	case ExtTOML:
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported site file extension %q (use .json or .toml)", filepath.Ext(path))
	}
}

// WriteJSON encodes points as an indented JSON site list.
func WriteJSON(w io.Writer, points []voronoi.Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file{Sites: nonNil(points)})
}

// WriteTOML encodes points as a TOML site list.
func WriteTOML(w io.Writer, points []voronoi.Point) error {
	return toml.NewEncoder(w).Encode(file{Sites: nonNil(points)})
}

// Write encodes points to path, choosing the format by extension. The file
// is replaced atomically.
func Write(path string, points []voronoi.Point) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		if err := WriteJSON(&buf, points); err != nil {
			return err
		}
	case ExtTOML:
		if err := WriteTOML(&buf, points); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported site file extension %q (use .json or .toml)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func nonNil(points []voronoi.Point) []voronoi.Point {
	if points == nil {
		return []voronoi.Point{}
	}
	return points
}
