package model

// DisplayUnit is the unit amounts are rendered in.
// Exactly one unit is active at a time; EUR is the default.
type DisplayUnit string

const (
	// UnitEUR is the primary fiat unit, rendered with fr-FR conventions.
	UnitEUR DisplayUnit = "EUR"
	// UnitUSD is the secondary fiat unit, rendered with en-US conventions.
	UnitUSD DisplayUnit = "USD"
	// UnitBTC renders amounts converted to bitcoin with a fixed reference rate.
	UnitBTC DisplayUnit = "BTC"
)

// DefaultDisplayUnit is used on first start or when the stored value is not recognised.
const DefaultDisplayUnit = UnitEUR

// ValidDisplayUnits lists the recognised unit tokens.
var ValidDisplayUnits = map[DisplayUnit]bool{
	UnitEUR: true,
	UnitUSD: true,
	UnitBTC: true,
}

// Valid reports whether u is one of the recognised units.
func (u DisplayUnit) Valid() bool {
	return ValidDisplayUnits[u]
}

// ParseDisplayUnit returns the unit matching token exactly.
// The second return value is false for unknown tokens.
func ParseDisplayUnit(token string) (DisplayUnit, bool) {
	u := DisplayUnit(token)
	if !u.Valid() {
		return "", false
	}
	return u, true
}
