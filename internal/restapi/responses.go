package restapi

import (
	"encoding/json"
	"net/http"

	"transitplanner.dev/internal/models"
)

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "resource not found",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

// sendUpstreamError reports a geocoder-side failure: the query could not
// run because the external oracle declined or misbehaved.
func (api *RestAPI) sendUpstreamError(w http.ResponseWriter, r *http.Request, text string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadGateway)

	response := models.ResponseModel{
		Code:        http.StatusBadGateway,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}
