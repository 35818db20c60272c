package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/categories.json", validateAPIKey(api, api.categoriesHandler))
	router.Handler(http.MethodGet, "/api/category/:id", validateAPIKey(api, api.categoryHandler))
	router.Handler(http.MethodGet, "/api/convert/:category", validateAPIKey(api, api.convertHandler))
	router.Handler(http.MethodGet, "/api/quick/:category", validateAPIKey(api, api.quickHandler))
	router.Handler(http.MethodGet, "/api/rates.json", validateAPIKey(api, api.ratesHandler))
	router.Handler(http.MethodGet, "/api/preferences.json", validateAPIKey(api, api.preferencesListHandler))
	router.Handler(http.MethodGet, "/api/preferences/:category", validateAPIKey(api, api.preferenceHandler))
	router.Handler(http.MethodPut, "/api/preferences/:category", validateAPIKey(api, api.savePreferenceHandler))
	router.Handler(http.MethodDelete, "/api/preferences/:category", validateAPIKey(api, api.deletePreferenceHandler))
	router.Handler(http.MethodGet, "/api/current-time.json", validateAPIKey(api, api.currentTimeHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
}
