package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.LatinAmericanSpanish)

// Format formatea un monto como moneda con separador de miles y dos
// decimales, ej. 12345.5 -> "$12,345.50". Se usa en recibos y reportes.
func Format(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}

// FormatPlain formatea sin el símbolo de moneda.
func FormatPlain(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
