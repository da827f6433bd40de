package domain

import (
	"strings"
	"unicode"
)

const cityPrefix = "city of "

// NormalizeName приводит название города/муниципалитета к ключу для join'а
// между GeoJSON и CSV. Порядок шагов важен: сначала чистим пробелы, потом
// регистр, и только затем снимаем префикс "city of ".
//
// Пунктуация и диакритика намеренно не трогаются: такие расхождения
// исправляются в исходных данных.
func NormalizeName(raw string) string {
	if raw == "" {
		return ""
	}

	name := strings.ReplaceAll(raw, "\r", "")
	name = strings.ReplaceAll(name, "\u00a0", " ")
	name = trimBlank(name)
	name = strings.ToLower(name)

	return strings.TrimPrefix(name, cityPrefix)
}

// trimBlank снимает по краям пробельные символы и BOM (U+FEFF):
// CSV из Excel часто начинается с BOM перед первым заголовком.
func trimBlank(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
