package analytics

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var monthNames = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthName nombre turco del mes calendario (1–12); vacío fuera de rango.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FormatTRY formatea un importe en liras sin decimales y con separador de miles
// turco, ej: 1250000 → "₺1.250.000".
func FormatTRY(amount float64) string {
	p := message.NewPrinter(language.Turkish)
	n := int64(round(amount, 0))
	if n < 0 {
		return "-₺" + p.Sprintf("%d", -n)
	}
	return "₺" + p.Sprintf("%d", n)
}
