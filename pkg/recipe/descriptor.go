package recipe

import (
	"strings"
	"unicode"
)

const normalizeExtraCapacity = 4

// NewDescriptor builds recipe metadata with a normalized stable ID derived
// from the display name.
func NewDescriptor(displayName, description string, tags ...string) Descriptor {
	return Descriptor{
		ID:          NormalizeID(displayName),
		DisplayName: displayName,
		Description: description,
		Tags:        tags,
	}
}

// NormalizeID converts a display name to the stable kebab-case identifier
// recipes are addressed by: lower-cased, camel-case humps and separators
// turned into hyphens.
func NormalizeID(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	builder := strings.Builder{}
	builder.Grow(len(normalized) + normalizeExtraCapacity)

	previousLower := false

	for _, current := range normalized {
		if current == '_' || current == ' ' {
			builder.WriteRune('-')

			previousLower = false

			continue
		}

		if unicode.IsUpper(current) {
			if previousLower {
				builder.WriteRune('-')
			}

			builder.WriteRune(unicode.ToLower(current))

			previousLower = false

			continue
		}

		builder.WriteRune(unicode.ToLower(current))
		previousLower = unicode.IsLetter(current) && unicode.IsLower(current)
	}

	return strings.Trim(builder.String(), "-")
}
