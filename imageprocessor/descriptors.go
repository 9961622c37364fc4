package imageprocessor

import (
	"fmt"
	"runtime/debug"

	"imagediffer/logging"

	"gocv.io/x/gocv"
)

// Descriptors holds the binary ORB descriptors of one image, copied out
// of OpenCV memory. Rows is the number of keypoints and Cols the
// descriptor width in bytes. A zero value is a legal, empty set.
type Descriptors struct {
	Rows int
	Cols int
	Data []byte
}

// Empty reports whether no features were detected
func (d Descriptors) Empty() bool {
	return d.Rows == 0 || len(d.Data) == 0
}

// toMat wraps the descriptor bytes in a Mat without copying. The Mat
// shares the cached slice, so it must only be read. The caller must
// Close it.
func (d Descriptors) toMat() (gocv.Mat, error) {
	return gocv.NewMatFromBytes(d.Rows, d.Cols, gocv.MatTypeCV8UC1, d.Data)
}

// Extractor produces the descriptor set for an image
type Extractor interface {
	Extract(path string) (Descriptors, error)
}

// ORBExtractor detects and describes features with ORB using OpenCV's
// default parameters
type ORBExtractor struct {
	registry *ImageLoaderRegistry
}

// NewORBExtractor creates an extractor backed by the standard loaders
func NewORBExtractor() *ORBExtractor {
	return &ORBExtractor{registry: NewImageLoaderRegistry()}
}

// Extract loads the image and computes its ORB descriptors. The path is
// expected to be validated already.
func (e *ORBExtractor) Extract(path string) (desc Descriptors, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogError("Panic during feature extraction: %v, file: %s\nStack trace: %s", r, path, string(debug.Stack()))
			desc = Descriptors{}
			err = newDecodeError(path, fmt.Errorf("panic during image decoding: %v", r))
		}
	}()

	img, err := e.registry.LoadImage(path)
	if err != nil {
		img.Close()
		return Descriptors{}, newDecodeError(path, err)
	}
	defer img.Close()

	if img.Empty() {
		return Descriptors{}, newDecodeError(path, fmt.Errorf("image is empty after loading"))
	}

	orb := gocv.NewORB()
	defer orb.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	keypoints, descMat := orb.DetectAndCompute(img, mask)
	defer descMat.Close()

	if descMat.Empty() {
		logging.DebugLog("No features detected in %s", path)
		return Descriptors{}, nil
	}

	desc = Descriptors{
		Rows: descMat.Rows(),
		Cols: descMat.Cols(),
		Data: descMat.ToBytes(),
	}
	logging.DebugLog("Extracted %d ORB features from %s", len(keypoints), path)
	return desc, nil
}
