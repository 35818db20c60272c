package models

import "unitconv.dev/internal/converter"

type QuickItemModel struct {
	Unit    string  `json:"unit"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type RateInfoModel struct {
	Text    string `json:"text"`
	Updated string `json:"updated,omitempty"`
}

// SessionModel is the unit selection after a category is activated.
type SessionModel struct {
	Category string         `json:"category"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	RateInfo *RateInfoModel `json:"rateInfo,omitempty"`
}

// ActivationModel describes a freshly activated category.
type ActivationModel struct {
	Category CategoryModel `json:"category"`
	Session  SessionModel  `json:"session"`
}

// ConversionModel is a converted value with its quick grid and rate line.
type ConversionModel struct {
	Category  string           `json:"category"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Input     string           `json:"input"`
	State     string           `json:"state"`
	Display   string           `json:"display"`
	Value     *float64         `json:"value,omitempty"`
	QuickGrid []QuickItemModel `json:"quickGrid"`
	RateInfo  *RateInfoModel   `json:"rateInfo,omitempty"`
}

func NewSessionModel(s *converter.Session, info converter.RateInfo) SessionModel {
	return SessionModel{
		Category: s.Category.ID,
		From:     s.From,
		To:       s.To,
		RateInfo: NewRateInfoModel(info),
	}
}

func NewConversionModel(s *converter.Session, result converter.Result, grid []converter.QuickItem, info converter.RateInfo) ConversionModel {
	model := ConversionModel{
		Category:  s.Category.ID,
		From:      s.From,
		To:        s.To,
		Input:     s.Input,
		State:     result.State.String(),
		Display:   result.Display,
		QuickGrid: NewQuickItemModels(grid),
		RateInfo:  NewRateInfoModel(info),
	}
	if result.State == converter.StateOK {
		value := result.Value
		model.Value = &value
	}
	return model
}

func NewQuickItemModels(grid []converter.QuickItem) []QuickItemModel {
	items := make([]QuickItemModel, 0, len(grid))
	for _, item := range grid {
		items = append(items, QuickItemModel{
			Unit:    item.Unit.ID,
			Label:   item.Label,
			Value:   item.Value,
			Display: item.Display,
		})
	}
	return items
}

// NewRateInfoModel returns nil for hidden rate info so it is left out of the JSON.
func NewRateInfoModel(info converter.RateInfo) *RateInfoModel {
	if !info.Visible {
		return nil
	}
	return &RateInfoModel{Text: info.Text, Updated: info.Updated}
}
