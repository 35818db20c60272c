package models

import "unitconv.dev/internal/catalog"

type UnitModel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Label  string  `json:"label"`
	ToBase float64 `json:"toBase,omitempty"`
}

// CategoryModel describes a category and its selectable units.
type CategoryModel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Kind        string      `json:"kind"`
	DefaultFrom string      `json:"defaultFrom"`
	DefaultTo   string      `json:"defaultTo"`
	Units       []UnitModel `json:"units"`
}

func NewCategoryModel(cat catalog.Category) CategoryModel {
	from, to := cat.DefaultPair()
	units := make([]UnitModel, 0, len(cat.Units))
	for _, unit := range cat.Units {
		model := UnitModel{
			ID:     unit.ID,
			Name:   unit.Name,
			Symbol: unit.Symbol,
			Label:  unit.Label(),
		}
		if cat.Kind == catalog.Linear {
			model.ToBase = unit.ToBase
		}
		units = append(units, model)
	}

	return CategoryModel{
		ID:          cat.ID,
		Name:        cat.Name,
		Kind:        cat.Kind.String(),
		DefaultFrom: from,
		DefaultTo:   to,
		Units:       units,
	}
}
