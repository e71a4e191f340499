package sites

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

func TestRandom(t *testing.T) {
	points, err := Random(500, 200, 100, voronoi.NewRand(1))
	require.NoError(t, err)
	require.Len(t, points, 500)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, MarkerRadius)
		assert.LessOrEqual(t, p.X, 200-MarkerRadius)
		assert.GreaterOrEqual(t, p.Y, MarkerRadius)
		assert.LessOrEqual(t, p.Y, 100-MarkerRadius)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, err := Random(20, 64, 64, voronoi.NewRand(9))
	require.NoError(t, err)
	b, err := Random(20, 64, 64, voronoi.NewRand(9))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomTinyRasterPinsToCenter(t *testing.T) {
	points, err := Random(3, 4, 100, voronoi.NewRand(2))
	require.NoError(t, err)
	for _, p := range points {
		assert.Equal(t, 2.0, p.X)
		assert.GreaterOrEqual(t, p.Y, MarkerRadius)
	}
}

func TestRandomInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Random(n, 10, 10, nil)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidSites), "n=%d: %v", n, err)
	}
}

func TestToggle(t *testing.T) {
	points := []voronoi.Point{{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 50, Y: 50}}
	original := append([]voronoi.Point(nil), points...)

	t.Run("removes first point in radius", func(t *testing.T) {
		got, added := Toggle(points, voronoi.Point{X: 11, Y: 10}, MarkerRadius)
		assert.False(t, added)
		assert.Equal(t, []voronoi.Point{{X: 12, Y: 10}, {X: 50, Y: 50}}, got)
		assert.Equal(t, original, points)
	})

	t.Run("radius is inclusive", func(t *testing.T) {
		got, added := Toggle(points, voronoi.Point{X: 50, Y: 53}, MarkerRadius)
		assert.False(t, added)
		assert.Len(t, got, 2)
	})

	t.Run("adds outside radius", func(t *testing.T) {
		p := voronoi.Point{X: 30, Y: 30}
		got, added := Toggle(points, p, MarkerRadius)
		assert.True(t, added)
		assert.Equal(t, append(original, p), got)
		assert.Equal(t, original, points)
	})

	t.Run("append does not alias input", func(t *testing.T) {
		backing := make([]voronoi.Point, 1, 8)
		backing[0] = voronoi.Point{X: 1, Y: 1}
		a, _ := Toggle(backing, voronoi.Point{X: 100, Y: 100}, MarkerRadius)
		b, _ := Toggle(backing, voronoi.Point{X: 200, Y: 200}, MarkerRadius)
		assert.Equal(t, voronoi.Point{X: 100, Y: 100}, a[1])
		assert.Equal(t, voronoi.Point{X: 200, Y: 200}, b[1])
	})

	t.Run("empty list", func(t *testing.T) {
		got, added := Toggle(nil, voronoi.Point{X: 1, Y: 2}, MarkerRadius)
		assert.True(t, added)
		assert.Equal(t, []voronoi.Point{{X: 1, Y: 2}}, got)
	})
}

func TestReadWriteFiles(t *testing.T) {
	points := []voronoi.Point{{X: 1.5, Y: 2}, {X: 300, Y: 0.25}}

	for _, ext := range []string{ExtJSON, ExtTOML} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "sites"+ext)
			require.NoError(t, Write(path, points))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, points, got)

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
		})
	}
}

func TestReadJSON(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"sites":[{"x":1,"y":2},{"x":3,"y":4}]}`))
	require.NoError(t, err)
	assert.Equal(t, []voronoi.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, got)

	_, err = ReadJSON(strings.NewReader(`{"sites":`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSites))
}

func TestReadTOML(t *testing.T) {
	input := "[[sites]]\nx = 1.0\ny = 2.0\n\n[[sites]]\nx = 3.0\ny = 4.0\n"
	got, err := ReadTOML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []voronoi.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, got)

	_, err = ReadTOML(strings.NewReader("[[sites]\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSites))

	_, err = ReadTOML(strings.NewReader("[[sites]]\nx = nan\ny = 1.0\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSites))
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, `{"sites":[]}`, buf.String())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "%v", err)

	_, err = Read(filepath.Join(dir, "sites.yaml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "%v", err)

	assert.True(t, errors.Is(Write(filepath.Join(dir, "sites.csv"), nil), errors.ErrCodeInvalidFormat))
}
