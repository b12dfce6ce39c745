package items

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitarTildes descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var quitarTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizar lleva el texto a minúsculas sin tildes para búsqueda tolerante.
func normalizar(s string) string {
	out, _, err := transform.String(quitarTildes, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
