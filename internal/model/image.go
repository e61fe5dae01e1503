package model

// ImageReference is a single image discovered in the input markup.
// It is immutable once created and carries no identity beyond its two
// fields; the scanner does not deduplicate references across files.
type ImageReference struct {
	// Name is the value of the name="..." attribute. It becomes the base
	// of the stored filename, with an extension appended when Name does
	// not already carry a recognized image extension.
	Name string

	// SourceURL is the value of the src="..." attribute. Plain HTTP(S)
	// URLs only; no auth and no custom scheme support.
	SourceURL string
}

// DownloadOutcome is the per-reference result produced by the fetcher.
// It is consumed by the batch downloader's tally and by tests; nothing
// else tracks download state (on-disk presence is the only persistent
// record of a successful download).
type DownloadOutcome struct {
	// Succeeded is true when the image is on disk after the call,
	// whether it was downloaded now or already existed.
	Succeeded bool

	// FinalPath is the path the image was stored at. Empty when
	// Succeeded is false.
	FinalPath string
}
