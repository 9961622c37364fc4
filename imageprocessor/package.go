// Package imageprocessor loads images, extracts ORB feature descriptors
// and scores how closely two images match.
package imageprocessor
