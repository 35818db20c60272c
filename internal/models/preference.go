package models

import "unitconv.dev/prefsdb"

// PreferenceModel is the saved unit pair of a category.
type PreferenceModel struct {
	Category  string `json:"category"`
	From      string `json:"from"`
	To        string `json:"to"`
	Saved     bool   `json:"saved"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

func NewPreferenceModel(category string, pair prefsdb.UnitPair, saved bool) PreferenceModel {
	return PreferenceModel{Category: category, From: pair.From, To: pair.To, Saved: saved}
}

func NewPreferenceModels(prefs []prefsdb.Preference) []PreferenceModel {
	items := make([]PreferenceModel, 0, len(prefs))
	for _, pref := range prefs {
		model := NewPreferenceModel(pref.Category, pref.Pair, true)
		model.UpdatedAt = pref.UpdatedAt.UnixMilli()
		items = append(items, model)
	}
	return items
}
