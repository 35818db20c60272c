package restapi

import (
	"net/http"
	"time"

	"unitconv.dev/internal/models"
)

// ratesHandler reports the exchange rate table. With refresh=true it fetches
// new rates first; a failed fetch is reported through lastError.
func (api *RestAPI) ratesHandler(w http.ResponseWriter, r *http.Request) {
	manager := api.RatesManager

	if r.URL.Query().Get("refresh") == "true" {
		// failures are already logged by the manager and kept in its status
		_ = manager.Refresh(r.Context())
	}

	entry := models.NewRatesModel(manager.BaseCurrency(), manager.Status(), manager.Table())
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	data := models.NewCurrentTimeData(time.Now())
	api.sendResponse(w, r, models.NewOKResponse(data))
}
