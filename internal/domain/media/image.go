package media

import (
	"net/url"
	"strings"
)

// PlaceholderURL is served when a listing has no usable image.
const PlaceholderURL = "/placeholder.svg"

// ResolveImageURL maps a stored image path to a public URL on the storage
// service. Absolute URLs pass through untouched.
func ResolveImageURL(storageBase, bucket, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PlaceholderURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if storageBase == "" {
		return PlaceholderURL
	}

	segments := []string{"storage", "v1", "object", "public"}
	for _, part := range strings.Split(strings.Trim(bucket, "/")+"/"+path, "/") {
		if part == "" {
			continue
		}
		segments = append(segments, url.PathEscape(part))
	}
	return strings.TrimRight(storageBase, "/") + "/" + strings.Join(segments, "/")
}

// ResolveImageURLs resolves every path and always returns at least the
// placeholder so a card has a cover.
func ResolveImageURLs(storageBase, bucket string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, ResolveImageURL(storageBase, bucket, p))
	}
	if len(out) == 0 {
		out = append(out, PlaceholderURL)
	}
	return out
}
