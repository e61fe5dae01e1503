// Package main provides the entry point for the imgscribe CLI.
//
// imgscribe is a two-stage utility for turning photographed lecture
// material into markdown notes. It scans HTML snippet files for <img>
// tags, downloads the referenced images, and transcribes them with
// Tesseract OCR into a single document.
//
// Usage:
//
//	imgscribe fetch
//	imgscribe transcribe
//
// See --help for all available options.
package main

// main is the entry point for imgscribe.
func main() {
	Execute()
}
