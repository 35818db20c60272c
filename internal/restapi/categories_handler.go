package restapi

import (
	"errors"
	"net/http"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/converter"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/utils"
)

func (api *RestAPI) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories := catalog.All()
	list := make([]models.CategoryModel, 0, len(categories))
	for _, cat := range categories {
		list = append(list, models.NewCategoryModel(cat))
	}

	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences()))
}

// categoryHandler activates a category: it reports the units that would be
// selected, and starts loading exchange rates for currency.
func (api *RestAPI) categoryHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := api.activate(w, r, "id")
	if !ok {
		return
	}

	entry := models.ActivationModel{
		Category: models.NewCategoryModel(session.Category),
		Session:  models.NewSessionModel(session, api.Controller.RateInfo(session)),
	}
	references := models.NewUnitReferences(session.Category, session.From, session.To)

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

// activate validates the category path parameter and opens a session for it.
// It writes the error response itself and reports false on failure.
func (api *RestAPI) activate(w http.ResponseWriter, r *http.Request, param string) (*converter.Session, bool) {
	id := utils.ExtractIDFromParams(r, param)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{param: {err.Error()}})
		return nil, false
	}

	session, err := api.Controller.Activate(r.Context(), id)
	if errors.Is(err, converter.ErrUnknownCategory) {
		api.sendNotFound(w, r)
		return nil, false
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return nil, false
	}
	return session, true
}
