package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/utils"
	"unitconv.dev/prefsdb"
)

const maxPreferenceBody = 1 << 10

func (api *RestAPI) preferencesListHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := api.Prefs.List(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewPreferenceModels(prefs), models.NewEmptyReferences()))
}

// preferenceHandler returns the saved pair of a category, or its default
// pair with saved=false.
func (api *RestAPI) preferenceHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := api.lookupCategory(w, r)
	if !ok {
		return
	}

	pair, saved, err := api.Prefs.Load(r.Context(), cat.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !saved {
		pair.From, pair.To = cat.DefaultPair()
	}

	entry := models.NewPreferenceModel(cat.ID, pair, saved)
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewUnitReferences(cat, pair.From, pair.To)))
}

func (api *RestAPI) savePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := api.lookupCategory(w, r)
	if !ok {
		return
	}

	var pair prefsdb.UnitPair
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreferenceBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&pair); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"Invalid JSON body."}})
		return
	}

	fieldErrors := make(map[string][]string)
	for field, unitID := range map[string]string{"from": pair.From, "to": pair.To} {
		if !cat.HasUnit(unitID) {
			fieldErrors[field] = append(fieldErrors[field], fmt.Sprintf("Invalid field value for field %q.", field))
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Prefs.Save(r.Context(), cat.ID, pair); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.NewPreferenceModel(cat.ID, pair, true)
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewUnitReferences(cat, pair.From, pair.To)))
}

func (api *RestAPI) deletePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := api.lookupCategory(w, r)
	if !ok {
		return
	}

	removed, err := api.Prefs.Delete(r.Context(), cat.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !removed {
		api.sendNotFound(w, r)
		return
	}

	from, to := cat.DefaultPair()
	entry := models.NewPreferenceModel(cat.ID, prefsdb.UnitPair{From: from, To: to}, false)
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewUnitReferences(cat, from, to)))
}

func (api *RestAPI) lookupCategory(w http.ResponseWriter, r *http.Request) (catalog.Category, bool) {
	id := utils.ExtractIDFromParams(r, "category")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"category": {err.Error()}})
		return catalog.Category{}, false
	}

	cat, ok := catalog.Lookup(id)
	if !ok {
		api.sendNotFound(w, r)
		return catalog.Category{}, false
	}
	return cat, true
}
