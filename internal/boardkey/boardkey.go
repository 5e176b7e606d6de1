// Package boardkey turns user-entered titles and page paths into stable slugs.
package boardkey

import (
	"strings"

	"github.com/gosimple/slug"
)

// Default is the reserved board key used for the root path. It is the only key seeded with sample data.
const Default = "default"

// DefaultNamespace prefixes every persisted board snapshot.
const DefaultNamespace = "kaiser"

// Slugify lower-cases title and collapses every run of characters outside [a-z0-9] into a single "-",
// trimming separators at both ends. Slugify(Slugify(x)) == Slugify(x).
//
// Two titles that slugify identically produce the same id; callers creating lines and columns
// from titles do not deduplicate.
func Slugify(title string) string {
	// slug keeps "_" as a word character; fold it into the separator run.
	return slug.Make(strings.ReplaceAll(title, "_", " "))
}

// FromPath derives a board key from a URL path such as "/my-board" or "/My Board/card/3".
// Only the first segment matters. An empty or root path yields Default.
func FromPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimLeft(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	key := Slugify(path)
	if key == "" {
		return Default
	}
	return key
}

// Normalize slugifies a key that may already be a slug or a raw title.
func Normalize(key string) string {
	key = Slugify(key)
	if key == "" {
		return Default
	}
	return key
}

// StorageKey is the persistence key for a board: "{namespace}/{boardKey}".
func StorageKey(namespace, boardKey string) string {
	return Prefix(namespace) + Normalize(boardKey)
}

// Prefix is the key prefix shared by every board in namespace, including the trailing "/".
func Prefix(namespace string) string {
	namespace = strings.Trim(strings.TrimSpace(namespace), "/")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + "/"
}

// FromStorageKey reverses StorageKey. ok is false when key is outside namespace.
func FromStorageKey(namespace, key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, Prefix(namespace))
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
