package models

import "unitconv.dev/internal/catalog"

// ReferencesModel References model for related data
type ReferencesModel struct {
	Units []UnitReference `json:"units"`
}

// UnitReference identifies a unit referenced by an entry.
type UnitReference struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Label    string `json:"label"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Units: []UnitReference{},
	}
}

// NewUnitReferences references the given unit ids of cat, skipping duplicates
// and ids that are not part of the category.
func NewUnitReferences(cat catalog.Category, ids ...string) ReferencesModel {
	refs := NewEmptyReferences()
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		unit, ok := cat.Unit(id)
		if !ok {
			continue
		}
		seen[id] = true
		refs.Units = append(refs.Units, NewUnitReference(cat.ID, unit))
	}
	return refs
}

func NewUnitReference(categoryID string, unit catalog.Unit) UnitReference {
	return UnitReference{
		ID:       unit.ID,
		Category: categoryID,
		Name:     unit.Name,
		Symbol:   unit.Symbol,
		Label:    unit.Label(),
	}
}
