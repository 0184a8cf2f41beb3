// Package envfile rewrites environment files to carry a new image version.
package envfile

import "strings"

const imageVersionMarker = "export IMAGE_VERSION="

// SetImageVersion replaces every line starting with the image version marker
// with one carrying releaseTag. All other lines pass through unchanged, order
// and line count preserved. Content without a marker line is returned as is.
func SetImageVersion(content, releaseTag string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, imageVersionMarker) {
			lines[i] = imageVersionMarker + releaseTag
		}
	}
	return strings.Join(lines, "\n")
}
