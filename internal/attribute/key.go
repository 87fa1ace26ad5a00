package attribute

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is assumed for keys written without a namespace ("health" == "minecraft:health").
const DefaultNamespace = "minecraft"

// ErrInvalidKey is returned for keys that are not valid namespaced resource keys.
var ErrInvalidKey = errors.New("invalid resource key")

// ParseKey normalizes a namespaced resource key of the form "namespace:path".
// Namespace allows [a-z0-9_.-], path additionally allows '/'.
func ParseKey(s string) (string, error) {
	namespace, path, found := strings.Cut(s, ":")
	if !found {
		namespace, path = DefaultNamespace, s
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if path == "" {
		return "", fmt.Errorf("%w: %q has empty path", ErrInvalidKey, s)
	}
	for _, r := range namespace {
		if !isKeyRune(r, false) {
			return "", fmt.Errorf("%w: %q has bad namespace character %q", ErrInvalidKey, s, r)
		}
	}
	for _, r := range path {
		if !isKeyRune(r, true) {
			return "", fmt.Errorf("%w: %q has bad path character %q", ErrInvalidKey, s, r)
		}
	}
	return namespace + ":" + path, nil
}

func isKeyRune(r rune, allowSlash bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	case r == '/':
		return allowSlash
	}
	return false
}

// descriptionIDFor builds the translation key used when a catalog entry omits one:
// "example:move/speed" -> "attribute.name.move.speed".
func descriptionIDFor(key string) string {
	_, path, _ := strings.Cut(key, ":")
	return "attribute.name." + strings.ReplaceAll(path, "/", ".")
}
