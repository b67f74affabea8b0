package logo

import "os"

// NotFoundMessage returns the notice emitted when a logo path does not exist.
func NotFoundMessage(path string) string {
	return "Logo file not found: " + path + ". Proceeding without logo."
}

// Exists reports whether path names an existing regular file.
// Any I/O error (missing file, missing parent, permission denied) yields false.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Resolve returns the logo that should actually be rendered.
//
// Path sources whose file does not exist resolve to None, and notice carries
// [NotFoundMessage] for the caller to report. Every other source is returned
// unchanged with an empty notice.
func Resolve(src Source) (effective Source, notice string) {
	if src.Kind() != KindPath {
		return src, ""
	}
	if Exists(src.Path()) {
		return src, ""
	}
	return None(), NotFoundMessage(src.Path())
}
