package money

// Currency prefixes formatted amounts with a display symbol.
type Currency struct {
	Symbol string
}

func (c Currency) Standard2(v float64) string { return c.Symbol + FormatStandard2(v) }
func (c Currency) Ceiling2(v float64) string  { return c.Symbol + FormatCeiling2(v) }
func (c Currency) Ceiling3(v float64) string  { return c.Symbol + FormatCeiling3(v) }

// Literal prefixes an amount the user typed, without reformatting it.
func (c Currency) Literal(raw string) string { return c.Symbol + raw }
