package intake

import (
	"path/filepath"
	"strings"
)

var mimeTypes = map[string]string{
	".wav": "audio/wav",
	".mp3": "audio/mpeg",
}

// MimeTypeForExt maps a supported extension to the MIME type sent to the model.
func MimeTypeForExt(ext string) (string, bool) {
	m, ok := mimeTypes[strings.ToLower(ext)]
	return m, ok
}

// IsAudioFile reports whether path has a supported audio extension.
func IsAudioFile(path string) bool {
	_, ok := MimeTypeForExt(filepath.Ext(path))
	return ok
}

// Accept is the value for an HTML file input's accept attribute.
const Accept = ".wav,.mp3,audio/wav,audio/mpeg"
