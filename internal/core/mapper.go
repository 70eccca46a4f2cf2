package core

import "strings"

// Mapper turns parsed rows into questionnaire items.
type Mapper struct {
	Types TypeTable
}

// NewMapper creates a mapper using the given type table.
// A nil table falls back to DefaultTypeTable.
func NewMapper(types TypeTable) *Mapper {
	if types == nil {
		types = DefaultTypeTable()
	}
	return &Mapper{Types: types}
}

// MapRow converts one row. The second result is false when the row lacks a
// required cell and must be skipped.
func (m *Mapper) MapRow(row Row) (Item, bool) {
	if !row.Valid() {
		return Item{}, false
	}

	item := Item{
		LinkID: row.LinkID,
		Text:   row.Text,
		Type:   m.Types.Resolve(row.Type),
	}

	if IsChoiceLike(item.Type) && row.Options != "" {
		for _, opt := range SplitOptions(row.Options) {
			item.AnswerOption = append(item.AnswerOption, AnswerOption{
				ValueCoding: Coding{Code: opt, Display: opt},
			})
		}
	}

	if item.Type == TypeInteger {
		item.InputType = InputTypeNumber
	}

	return item, true
}

// MapRows converts rows in order, dropping invalid ones.
// It returns the items and the source lines of skipped rows.
func (m *Mapper) MapRows(rows []Row) (items []Item, skipped []int) {
	items = make([]Item, 0, len(rows))
	for _, row := range rows {
		item, ok := m.MapRow(row)
		if !ok {
			skipped = append(skipped, row.Line)
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

// SplitOptions splits an options cell on commas and trims every token.
// Empty tokens are kept so the count always matches the cell.
func SplitOptions(cell string) []string {
	parts := strings.Split(cell, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
