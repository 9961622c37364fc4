package imageprocessor

import (
	"fmt"

	"imagediffer/logging"

	"gocv.io/x/gocv"
)

// SimilarRegionDistance is the Hamming distance below which a match
// counts as a similar region
const SimilarRegionDistance = 70

// Matcher pairs the descriptors of two images and returns the distance
// of every accepted match
type Matcher interface {
	Match(a, b Descriptors) ([]float64, error)
}

// HammingMatcher is a brute-force matcher using Hamming distance with
// cross-check: a pair is kept only when each descriptor is the other's
// nearest neighbour
type HammingMatcher struct{}

// Match runs OpenCV's BFMatcher over the two descriptor sets
func (HammingMatcher) Match(a, b Descriptors) ([]float64, error) {
	if a.Empty() || b.Empty() {
		return nil, nil
	}

	query, err := a.toMat()
	if err != nil {
		return nil, fmt.Errorf("cannot build query descriptors: %w", err)
	}
	defer query.Close()

	train, err := b.toMat()
	if err != nil {
		return nil, fmt.Errorf("cannot build train descriptors: %w", err)
	}
	defer train.Close()

	bf := gocv.NewBFMatcherWithParams(gocv.NormHamming, true)
	defer bf.Close()

	matches := bf.Match(query, train)
	distances := make([]float64, len(matches))
	for i, m := range matches {
		distances[i] = m.Distance
	}
	return distances, nil
}

// SimilarityEngine scores image pairs and caches descriptors by path.
// One engine serves one batch run.
type SimilarityEngine struct {
	extractor Extractor
	matcher   Matcher
	cache     DescriptorCache
}

// NewSimilarityEngine creates an engine using ORB features and a cache
// bounded to cacheSize images (unbounded when cacheSize <= 0)
func NewSimilarityEngine(cacheSize int) (*SimilarityEngine, error) {
	cache, err := NewDescriptorCache(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("cannot create descriptor cache: %w", err)
	}
	return NewSimilarityEngineWith(NewORBExtractor(), HammingMatcher{}, cache), nil
}

// NewSimilarityEngineWith creates an engine from explicit parts
func NewSimilarityEngineWith(extractor Extractor, matcher Matcher, cache DescriptorCache) *SimilarityEngine {
	return &SimilarityEngine{
		extractor: extractor,
		matcher:   matcher,
		cache:     cache,
	}
}

// Similarity returns the fraction of cross-checked matches between the
// two images whose distance is below SimilarRegionDistance.
//
// Both paths are validated first, in order. Identical path strings then
// score 1.0 without touching the cache or decoding anything. Errors are
// *InvalidImageError or *DecodeError.
func (e *SimilarityEngine) Similarity(pathA, pathB string) (float64, error) {
	if !IsValidImage(pathA) {
		return 0, &InvalidImageError{Path: pathA}
	}
	if !IsValidImage(pathB) {
		return 0, &InvalidImageError{Path: pathB}
	}

	if pathA == pathB {
		return 1.0, nil
	}

	descA, err := e.descriptors(pathA)
	if err != nil {
		return 0, err
	}
	descB, err := e.descriptors(pathB)
	if err != nil {
		return 0, err
	}

	distances, err := e.matcher.Match(descA, descB)
	if err != nil {
		return 0, newDecodeError(pathA+", "+pathB, err)
	}
	return MatchRatio(distances), nil
}

// CachedImages returns the number of images currently cached
func (e *SimilarityEngine) CachedImages() int {
	return e.cache.Len()
}

// Close drops every cached descriptor set
func (e *SimilarityEngine) Close() {
	e.cache.Purge()
}

func (e *SimilarityEngine) descriptors(path string) (Descriptors, error) {
	if desc, ok := e.cache.Get(path); ok {
		return desc, nil
	}

	desc, err := e.extractor.Extract(path)
	if err != nil {
		return Descriptors{}, err
	}
	e.cache.Add(path, desc)
	return desc, nil
}

// MatchRatio is the share of matches closer than SimilarRegionDistance.
// No matches at all is a full non-match.
func MatchRatio(distances []float64) float64 {
	if len(distances) == 0 {
		return 0.0
	}

	similar := 0
	for _, d := range distances {
		if d < SimilarRegionDistance {
			similar++
		}
	}

	ratio := float64(similar) / float64(len(distances))
	logging.DebugLog("Matches: %d, similar regions: %d", len(distances), similar)
	return ratio
}
