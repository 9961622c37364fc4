package imageprocessor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"imagediffer/logging"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage loads and returns the image as a grayscale Mat
	LoadImage(path string) (gocv.Mat, error)
}

// StandardImageLoader decodes with OpenCV and falls back to the Go image
// decoders when OpenCV returns nothing (GIF on older OpenCV builds,
// unusual TIFF layouts)
type StandardImageLoader struct {
	SupportedFormats []FormatType
}

// NewStandardImageLoader creates a loader for every allowed format
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{
		SupportedFormats: []FormatType{
			FormatJPEG,
			FormatPNG,
			FormatGIF,
			FormatTIFF,
			FormatBMP,
		},
	}
}

// CanLoad checks if this loader supports the file's format
func (l *StandardImageLoader) CanLoad(path string) bool {
	format := GetFileFormat(path)
	for _, supported := range l.SupportedFormats {
		if format == supported {
			return true
		}
	}
	return false
}

// LoadImage loads a 3-channel BGR image. ORB does its own gray
// conversion.
func (l *StandardImageLoader) LoadImage(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if !img.Empty() {
		return img, nil
	}
	img.Close()

	logging.DebugLog("OpenCV could not decode %s, trying Go image packages", path)
	goImg, err := tryGoImagePackages(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	return gocvMatFromGoImage(goImg)
}

// ImageLoaderRegistry maps file extensions to loaders
type ImageLoaderRegistry struct {
	loaders map[string]ImageLoader
	mutex   sync.RWMutex
}

// NewImageLoaderRegistry creates a registry with the standard loader
// registered for every allowed extension
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	standardLoader := NewStandardImageLoader()
	for ext := range formatExtensions {
		registry.RegisterLoader(ext, standardLoader)
	}

	return registry
}

// RegisterLoader registers a loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.loaders[strings.ToLower(ext)] = loader
}

// GetLoader returns the loader registered for the path's extension, or nil
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.loaders[strings.ToLower(filepath.Ext(path))]
}

// LoadImage loads an image using the registered loader
func (r *ImageLoaderRegistry) LoadImage(path string) (gocv.Mat, error) {
	loader := r.GetLoader(path)
	if loader == nil || !loader.CanLoad(path) {
		return gocv.Mat{}, fmt.Errorf("no suitable loader found for: %s", path)
	}
	return loader.LoadImage(path)
}

// tryGoImagePackages decodes with whichever Go decoder is registered
// for the file's content
func tryGoImagePackages(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// gocvMatFromGoImage converts a Go image to a BGR Mat, the layout
// IMRead produces in colour mode
func gocvMatFromGoImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return gocv.Mat{}, fmt.Errorf("image has no pixels")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		mat.Close()
		return gocv.Mat{}, err
	}
	return mat, nil
}
