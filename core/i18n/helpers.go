package i18n

import (
	"fmt"
	"strings"
)

// maxAcceptLanguageLength caps the Accept-Language header before parsing.
const maxAcceptLanguageLength = 4096

// ReplacePlaceholders substitutes %{name} placeholders. Unknown
// placeholders are left unchanged.
//
//	ReplacePlaceholders("Hola, %{name}", M{"name": "Ana"}) // "Hola, Ana"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "%{") {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "%{"+key+"}", fmt.Sprintf("%v", value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
