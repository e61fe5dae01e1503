package report

import (
	"os"

	exif "github.com/dsoprea/go-exif/v3"
)

// MetadataField is one EXIF tag selected for the report.
type MetadataField struct {
	// Name is the EXIF tag name, e.g. "Model".
	Name string

	// Value is the formatted tag value.
	Value string
}

// interestingTags are the EXIF tags worth surfacing under a lecture
// photo: what device took it, when, and what touched it afterwards.
// Order here is the order rows appear in the report table.
var interestingTags = []string{
	"Make",
	"Model",
	"Software",
	"DateTimeOriginal",
	"DateTime",
	"Artist",
}

// imageMetadata extracts the interesting EXIF tags from the image at
// path. Images without EXIF data (most PNGs, stripped JPEGs) return an
// empty slice and no error; the report simply omits the table. Only an
// unreadable file is an error.
func imageMetadata(path string) ([]MetadataField, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Reading back our own downloads
	if err != nil {
		return nil, err
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		// No EXIF segment is the normal case, not a failure.
		return nil, nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, nil
	}

	byName := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, ok := byName[entry.TagName]; !ok {
			byName[entry.TagName] = entry.Formatted
		}
	}

	fields := make([]MetadataField, 0, len(interestingTags))
	for _, tag := range interestingTags {
		if value, ok := byName[tag]; ok && value != "" {
			fields = append(fields, MetadataField{Name: tag, Value: value})
		}
	}
	return fields, nil
}
