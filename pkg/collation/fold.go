// Package collation реализует сравнение заголовков без учета регистра и диакритики.
package collation

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold приводит строку к базовой форме: Unicode case folding плюс удаление
// комбинируемых диакритических знаков. Две строки считаются одинаковыми
// заголовками тогда и только тогда, когда их Fold-формы равны.
func Fold(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		// Недекодируемый ввод сворачиваем как есть.
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Equal сообщает, равны ли две строки в базовой форме.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
