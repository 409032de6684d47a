package httputil

import (
	"encoding/json"
	"net/http"
)

// problemTypes maps the statuses this API emits to their RFC section
var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:          "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.2",
	http.StatusForbidden:             "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.4",
	http.StatusNotFound:              "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.5",
	http.StatusRequestEntityTooLarge: "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.14",
	http.StatusConflict:              "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.10",
	http.StatusInternalServerError:   "https://datatracker.ietf.org/doc/html/rfc9110#section-15.6.1",
}

// RespondJSON marshals data before touching the response, so an encoding
// failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondAccepted writes a bodiless 202
func RespondAccepted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusAccepted)
}

// RespondError writes an RFC 7807 problem document
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes a problem document with additional top-level
// members, e.g. the resource that caused a conflict.
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]any) {
	typ, ok := problemTypes[status]
	if !ok {
		typ = "about:blank"
	}

	problem := make(map[string]any, len(extras)+4)
	for k, v := range extras {
		problem[k] = v
	}
	problem["type"] = typ
	problem["title"] = http.StatusText(status)
	problem["status"] = status
	if detail != "" {
		problem["detail"] = detail
	}

	payload, err := json.Marshal(problem)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}
