package rpc

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/smartclin/clinic-api/internal/apperr"
)

type errorBody struct {
	Code    apperr.Kind `json:"code"`
	Message string      `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeResult(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

// writeError surfaces only the kind and client message; causes stay in logs
func writeError(w http.ResponseWriter, err *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(err.Kind))
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{
		Code:    err.Kind,
		Message: err.Message,
	}})
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{
		Code:    "INTERNAL_ERROR",
		Message: "something went wrong",
	}})
}
