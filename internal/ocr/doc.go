// Package ocr wraps the Tesseract OCR engine behind a small interface.
//
// Recognition never fails outward: missing files, engine errors and
// empty results all come back as fixed placeholder strings so that one
// bad image cannot abort a transcription run. The engine itself being
// unavailable is the one fatal condition, surfaced by Verify before any
// processing starts.
//
// Tesseract and the language pack must be installed on the system
// (e.g. apt-get install tesseract-ocr tesseract-ocr-rus).
package ocr
