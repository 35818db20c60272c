package restapi

import (
	"net/http"

	"unitconv.dev/internal/converter"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/utils"
)

// convertHandler serves /api/convert/:category?from=&to=&value=. Missing
// units fall back to the category's active selection.
func (api *RestAPI) convertHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.activate(w, r, "category")
	if !ok {
		return
	}

	query := r.URL.Query()
	from, fieldErrors := utils.ParseUnitParam(query, "from", session.Category, nil)
	to, fieldErrors := utils.ParseUnitParam(query, "to", session.Category, fieldErrors)
	value, fieldErrors := utils.ParseValueParam(query, "value", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.selectUnits(session, from, to); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	result := api.Controller.Convert(r.Context(), session, value)
	grid := api.Controller.QuickGrid(session, value)
	entry := models.NewConversionModel(session, result, grid, api.Controller.RateInfo(session))

	api.sendResponse(w, r, models.NewEntryResponse(entry, gridReferences(session, grid, session.To)))
}

// quickHandler serves /api/quick/:category?from=&value=.
func (api *RestAPI) quickHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.activate(w, r, "category")
	if !ok {
		return
	}

	query := r.URL.Query()
	from, fieldErrors := utils.ParseUnitParam(query, "from", session.Category, nil)
	value, fieldErrors := utils.ParseValueParam(query, "value", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.selectUnits(session, from, ""); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	grid := api.Controller.QuickGrid(session, value)
	api.sendResponse(w, r, models.NewListResponse(models.NewQuickItemModels(grid), gridReferences(session, grid)))
}

func (api *RestAPI) selectUnits(session *converter.Session, from, to string) error {
	if from == "" && to == "" {
		return nil
	}
	if from == "" {
		from = session.From
	}
	if to == "" {
		to = session.To
	}
	return api.Controller.SetUnits(session, from, to)
}

func gridReferences(session *converter.Session, grid []converter.QuickItem, extra ...string) models.ReferencesModel {
	ids := append([]string{session.From}, extra...)
	for _, item := range grid {
		ids = append(ids, item.Unit.ID)
	}
	return models.NewUnitReferences(session.Category, ids...)
}
