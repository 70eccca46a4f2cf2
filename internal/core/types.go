package core

// Canonical item type tokens used in the questionnaire document.
const (
	TypeString     = "string"
	TypeText       = "text"
	TypeBoolean    = "boolean"
	TypeInteger    = "integer"
	TypeDecimal    = "decimal"
	TypeDate       = "date"
	TypeChoice     = "choice"
	TypeOpenChoice = "open-choice"
)

// InputTypeNumber marks integer items for numeric entry.
const InputTypeNumber = "number"

// choiceLike lists canonical types that take answer options.
var choiceLike = map[string]bool{
	TypeChoice:     true,
	TypeOpenChoice: true,
}

// IsChoiceLike reports whether a canonical type expects a fixed option set.
func IsChoiceLike(canonical string) bool {
	return choiceLike[canonical]
}

// TypeTable translates the type labels survey authors write into canonical
// tokens. Lookups are exact-match and case-sensitive.
type TypeTable map[string]string

// DefaultTypeTable returns the labels understood out of the box.
// Callers may add to the returned table; it is a fresh copy every call.
func DefaultTypeTable() TypeTable {
	return TypeTable{
		"字串":       TypeString,
		"多選":       TypeChoice,
		"單選":       TypeChoice,
		"range":    TypeChoice,
		"multiple": TypeChoice,
		"boolean":  TypeBoolean,
		"整數":       TypeInteger,
		"日期":       TypeDate,
	}
}

// Resolve returns the canonical token for label, or label itself when the
// table has no entry for it.
func (t TypeTable) Resolve(label string) string {
	if canonical, ok := t[label]; ok {
		return canonical
	}
	return label
}
