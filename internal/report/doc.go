// Package report builds the transcription document.
//
// The builder walks the image folder in sorted filename order, runs the
// OCR engine over each image, and writes one markdown section per image:
// a header naming the file, the recognized text, and a separator. The
// output file is truncated and fully rewritten on every run. An optional
// EXIF table per image surfaces camera metadata when present.
package report
