package models

import "unitconv.dev/internal/rates"

// RatesModel reports the state of the exchange rate table.
type RatesModel struct {
	State     string             `json:"state"`
	Text      string             `json:"text"`
	Base      string             `json:"base"`
	UpdatedAt int64              `json:"updatedAt,omitempty"`
	LastError string             `json:"lastError,omitempty"`
	Rates     map[string]float64 `json:"rates"`
}

func NewRatesModel(base string, status rates.Status, table *rates.Table) RatesModel {
	model := RatesModel{
		State: string(status.State),
		Text:  status.Text,
		Base:  base,
		Rates: map[string]float64{},
	}
	if status.LastError != nil {
		model.LastError = status.LastError.Error()
	}
	if table != nil {
		model.Base = table.Base
		model.UpdatedAt = table.FetchedAt.UnixMilli()
		for code, rate := range table.Rates {
			model.Rates[code] = rate
		}
	}
	return model
}
