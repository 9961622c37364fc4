package imageprocessor

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// blockImage draws a grid of random gray blocks. The block corners give
// ORB plenty of features; the same seed always yields the same pixels.
func blockImage(seed int64, width, height, block int) *image.Gray {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for by := 0; by < height; by += block {
		for bx := 0; bx < width; bx += block {
			c := color.Gray{Y: uint8(rng.Intn(256))}
			for y := by; y < by+block && y < height; y++ {
				for x := bx; x < bx+block && x < width; x++ {
					img.SetGray(x, y, c)
				}
			}
		}
	}
	return img
}

// colourBlockImage tints blockImage so the three channels differ
func colourBlockImage(seed int64, width, height, block int) *image.RGBA {
	gray := blockImage(seed, width, height, block)
	img := image.NewRGBA(gray.Bounds())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray.GrayAt(x, y).Y
			img.SetRGBA(x, y, color.RGBA{R: v, G: 255 - v, B: v / 2, A: 255})
		}
	}
	return img
}

// blankImage is a uniform image with no features
func blankImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeBMP(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, img))
	return path
}

func writeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 75}))
	return path
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	return path
}

// fakeExtractor returns canned descriptors and counts calls per path
type fakeExtractor struct {
	descs map[string]Descriptors
	fail  map[string]error
	calls map[string]int
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		descs: make(map[string]Descriptors),
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeExtractor) Extract(path string) (Descriptors, error) {
	f.calls[path]++
	if err, ok := f.fail[path]; ok {
		return Descriptors{}, newDecodeError(path, err)
	}
	return f.descs[path], nil
}

// fakeMatcher returns the same distances for every pair
type fakeMatcher struct {
	distances []float64
	calls     int
}

func (m *fakeMatcher) Match(a, b Descriptors) ([]float64, error) {
	m.calls++
	return m.distances, nil
}

func oneFeature(b byte) Descriptors {
	data := make([]byte, 32)
	for i := range data {
		data[i] = b
	}
	return Descriptors{Rows: 1, Cols: 32, Data: data}
}
