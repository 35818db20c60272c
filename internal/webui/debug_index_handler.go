package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/logging"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   content,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "categories":
		data = catalog.All()
		title = "Catalog - Categories"
	case "rates":
		data = webUI.RatesManager.Table()
		title = "Exchange Rates - Table"
	case "rates_status":
		data = webUI.RatesManager.Status()
		title = "Exchange Rates - Status"
	case "preferences":
		prefs, err := webUI.Prefs.List(r.Context())
		if err != nil {
			logging.LogError(logging.FromContext(r.Context()), "failed to list preferences", err)
			http.Error(w, "failed to list preferences", http.StatusInternalServerError)
			return
		}
		data = prefs
		title = "Preferences - Saved Pairs"
	case "tables":
		counts, err := webUI.Prefs.TableCounts(r.Context())
		if err != nil {
			logging.LogError(logging.FromContext(r.Context()), "failed to count preference tables", err)
			http.Error(w, "failed to count tables", http.StatusInternalServerError)
			return
		}
		data = counts
		title = "Preferences - Table Counts"
	default:
		data = map[string]string{
			"error": "Please use one of the following: categories, rates, rates_status, preferences, tables.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
