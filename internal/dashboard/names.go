package dashboard

import (
	"unicode"
	"unicode/utf8"
)

// DisplayName upper-cases the first letter of a model type.
func DisplayName(modelType string) string {
	r, size := utf8.DecodeRuneInString(modelType)
	if r == utf8.RuneError {
		return modelType
	}
	return string(unicode.ToUpper(r)) + modelType[size:]
}
