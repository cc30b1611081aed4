package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents elimina marcas diacríticas (tildes, diéresis) antes de generar el slug,
// de modo que "Categoría" produce "categoria" y no "categor-a".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate convierte un nombre en un identificador apto para URL.
// Minúsculas; cada secuencia de caracteres fuera de [a-z0-9] se colapsa en un solo
// guion; se recortan guiones al inicio y al final. Es total y determinista: nunca
// falla, pero tampoco garantiza unicidad (eso lo decide quien lo usa).
func Generate(name string) string {
	if folded, _, err := transform.String(foldAccents, name); err == nil {
		name = folded
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
