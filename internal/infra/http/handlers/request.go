package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const maxJSONBody = 1 << 20

// decodeJSON writes the 400 itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		details := err.Error()
		if errors.Is(err, io.EOF) {
			details = "request body is empty"
		}
		response.Fail(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON body", details)
		return false
	}
	return true
}

// identity is only called behind Authenticate.
func identity(w http.ResponseWriter, r *http.Request) (entity.Identity, bool) {
	id, ok := entity.IdentityFrom(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "authentication required", "")
	}
	return id, ok
}

func pageFrom(r *http.Request) entity.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return entity.NewPage(page, limit)
}

// splitList parses "a,b, c" into its non-empty, upper-cased items.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func boolParam(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
