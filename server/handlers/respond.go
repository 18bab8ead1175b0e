package handlers

import (
	"net/http"

	"ft-server/logging"

	"github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure reports err as 400 when it is a ParamError, otherwise logs it
// and replies 500 with message.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, message string) {
	if isParamError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logging.Error().Err(err).Str("path", r.URL.Path).Msg(message)
	writeError(w, http.StatusInternalServerError, message)
}
