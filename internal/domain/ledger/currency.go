package ledger

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is used when no currency symbol is configured.
const DefaultSymbol = "Ksh"

// Formatter renders amounts as "{symbol} {grouped amount}.{2 digits}".
type Formatter struct {
	symbol  string
	decimal string
	printer *message.Printer
}

// NewFormatter builds a formatter for the given symbol and BCP 47 locale.
// An empty symbol falls back to DefaultSymbol and an unknown locale to English.
func NewFormatter(symbol, locale string) *Formatter {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = DefaultSymbol
	}

	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}

	p := message.NewPrinter(tag)

	// "0.5" or "0,5": the second rune is the locale's decimal separator.
	decimal := "."
	if probe := []rune(p.Sprintf("%.1f", 0.5)); len(probe) == 3 {
		decimal = string(probe[1])
	}

	return &Formatter{symbol: symbol, decimal: decimal, printer: p}
}

// Symbol returns the configured currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Format renders a with thousands grouping and exactly two fraction digits.
func (f *Formatter) Format(a Amount) string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	var b strings.Builder
	b.WriteString(f.symbol)
	b.WriteByte(' ')
	b.WriteString(sign)
	b.WriteString(f.printer.Sprintf("%d", v/100))
	b.WriteString(f.decimal)
	cents := v % 100
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(f.printer.Sprintf("%d", cents))
	return b.String()
}
