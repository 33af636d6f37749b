package platform

import "strings"

// Characters that Windows and ffmpeg do not tolerate in file names.
const unsafeFilenameChars = `<>:"/\|?*`

// SanitizeFilename replaces each filesystem-unsafe character in name with
// an underscore and trims surrounding whitespace. It operates on a leaf
// file name only; callers must never pass a full path, since separators
// are among the replaced characters. The function is pure, total, and
// idempotent.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(unsafeFilenameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
