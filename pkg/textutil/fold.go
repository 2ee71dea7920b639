// Package textutil normaliza texto para búsquedas: minúsculas y sin
// diacríticos, de modo que "Café", "cafe" y "CAFÉ" sean el mismo término.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas y sin marcas diacríticas (NFD, se eliminan
// los combining marks, NFC). Si la transformación falla se degrada a solo
// minúsculas.
func Fold(s string) string {
	// El transformer encadenado es stateful: se construye por llamada para
	// que Fold sea seguro en concurrencia.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ContainsFold reporta si substr aparece dentro de s comparando con Fold.
// Con substr vacío siempre es true.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
