package ocr

// Engine converts a stored image into plain text.
//
// Design decision: We use an interface rather than calling Tesseract
// directly from the report builder because:
//  1. Report construction is testable with a fake engine
//  2. The sentinel-string contract is documented in one place
//  3. Swapping the OCR backend stays a one-package change
type Engine interface {
	// Recognize extracts text from the image at path. It always
	// returns a string: recognition problems are reported as the
	// sentinel messages below, never as an error.
	Recognize(imagePath string) string

	// Verify reports whether the engine is usable at all (binary
	// reachable, language pack installed). A non-nil error is a fatal
	// precondition for the whole transcription stage.
	Verify() error
}

// Sentinel texts returned by Recognize in place of an error. The tool
// transcribes Russian lecture material, so the placeholders that end up
// inside the report are Russian too.
const (
	// SentinelNoText is returned when recognition succeeds but yields
	// only whitespace.
	SentinelNoText = "Текст не распознан"

	// sentinelNotFoundFormat formats the missing-file placeholder.
	sentinelNotFoundFormat = "Файл %s не найден"

	// sentinelFailureFormat formats the engine-failure placeholder,
	// embedding the failure detail.
	sentinelFailureFormat = "Ошибка при обработке изображения: %v"
)
