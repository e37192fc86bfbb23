package server

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// formatter encodes API responses as JSON, or MessagePack when the
// request asks for format=msgpack.
type formatter struct{}

func newFormatter() *formatter { return &formatter{} }

func (f *formatter) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if req.URL.Query().Get("format") == "msgpack" {
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.Encode(data) //nolint:errcheck // response already committed
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // response already committed
}

// errorBody is the uniform error payload.
type errorBody struct {
	Error string `json:"error"`
}

func (f *formatter) writeError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	f.write(w, req, status, errorBody{Error: msg})
}
