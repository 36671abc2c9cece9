package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/linkpulse/linkpulse/internal/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

func logRequest(req *http.Request) {
	log.Infof("%s -- %s -- %s", req.RemoteAddr, req.Method, req.URL.Path)
}

// logAndReturnError logs the failure and writes a JSON error envelope.
// consoleStr optionally replaces the envelope text in the log output.
func logAndReturnError(w http.ResponseWriter, httpResponseStr string, code int, consoleStr ...string) {
	if len(consoleStr) > 0 {
		log.Errorln(consoleStr[0])
	} else {
		log.Errorln(httpResponseStr)
	}
	writeJSON(w, code, errorResponse{Error: httpResponseStr})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}
