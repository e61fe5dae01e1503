package fetch

import (
	"net/url"
	"strings"
)

// imageExtensions is the set of recognized image file extensions, checked
// against URL paths and requested names. Order is irrelevant; lowercase
// comparison is used throughout.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg"}

// inferExtension determines the stored file extension with a two-tier
// decision: the URL path suffix wins when it carries a recognized image
// extension; otherwise the response content-type is checked by substring;
// otherwise .jpg is assumed.
func inferExtension(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		path := strings.ToLower(u.Path)
		for _, ext := range imageExtensions {
			if strings.HasSuffix(path, ext) {
				return ext
			}
		}
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "svg"):
		return ".svg"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}

	return ".jpg"
}

// ensureExtension appends ext to name unless name already ends in a
// recognized image extension, in which case it is kept unchanged.
func ensureExtension(name, ext string) string {
	lower := strings.ToLower(name)
	for _, e := range imageExtensions {
		if strings.HasSuffix(lower, e) {
			return name
		}
	}
	return name + ext
}
