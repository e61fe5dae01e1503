package fetch

import "testing"

// TestInferExtension tests the URL-path-then-content-type decision.
func TestInferExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rawURL      string
		contentType string
		want        string
	}{
		{
			name:   "url path extension wins",
			rawURL: "http://example.com/images/photo.png",
			want:   ".png",
		},
		{
			name:        "url path extension beats content type",
			rawURL:      "http://example.com/photo.gif",
			contentType: "image/png",
			want:        ".gif",
		},
		{
			name:   "query string does not hide the path extension",
			rawURL: "http://example.com/photo.jpeg?size=large",
			want:   ".jpeg",
		},
		{
			name:   "uppercase path extension is recognized",
			rawURL: "http://example.com/PHOTO.JPG",
			want:   ".jpg",
		},
		{
			name:        "content type fallback jpeg",
			rawURL:      "http://example.com/download?id=42",
			contentType: "image/jpeg",
			want:        ".jpg",
		},
		{
			name:        "content type fallback png with charset",
			rawURL:      "http://example.com/download",
			contentType: "image/png; charset=binary",
			want:        ".png",
		},
		{
			name:        "content type fallback svg",
			rawURL:      "http://example.com/download",
			contentType: "image/svg+xml",
			want:        ".svg",
		},
		{
			name:        "content type fallback webp",
			rawURL:      "http://example.com/download",
			contentType: "image/webp",
			want:        ".webp",
		},
		{
			name:   "no hints at all defaults to jpg",
			rawURL: "http://example.com/download",
			want:   ".jpg",
		},
		{
			name:        "unrecognized content type defaults to jpg",
			rawURL:      "http://example.com/download",
			contentType: "application/octet-stream",
			want:        ".jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := inferExtension(tt.rawURL, tt.contentType)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestEnsureExtension tests name normalization against the inferred extension.
func TestEnsureExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		ext      string
		want     string
	}{
		{
			name:     "bare name gets the extension",
			fileName: "fig1",
			ext:      ".png",
			want:     "fig1.png",
		},
		{
			name:     "existing extension is kept",
			fileName: "fig1.jpg",
			ext:      ".png",
			want:     "fig1.jpg",
		},
		{
			name:     "uppercase existing extension is kept",
			fileName: "fig1.PNG",
			ext:      ".jpg",
			want:     "fig1.PNG",
		},
		{
			name:     "unrecognized suffix still gets the extension",
			fileName: "fig1.data",
			ext:      ".jpg",
			want:     "fig1.data.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ensureExtension(tt.fileName, tt.ext)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
