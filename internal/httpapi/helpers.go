package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rumriverbarn/venuesite/internal/story"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

const pageShellOpen = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Rum River Barn</title></head>
<body>
`

const pageShellClose = `
</body>
</html>
`

// notFoundPage is the friendly page for unknown slugs.
const notFoundPage = pageShellOpen + `<main class="not-found">
  <h1>Page Not Found</h1>
  <p>The page you are looking for does not exist. Perhaps start from <a href="/">the homepage</a>?</p>
</main>` + pageShellClose

// fallbackPage renders when the content store is unreachable, so an upstream
// outage never shows the visitor an error page.
const fallbackPage = pageShellOpen + `<main class="static-fallback">
  <h1>Rum River Barn &amp; Vineyard</h1>
  <p>Minnesota's premier barn wedding venue, nestled along the scenic Rum River.</p>
  <p>Call us at (320) 355-2000 or email events@rumriverbarn.com to schedule a tour.</p>
</main>` + pageShellClose

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func normalizeVersion(raw string) (string, error) {
	switch strings.TrimSpace(raw) {
	case "":
		return story.VersionPublished, nil
	case story.VersionDraft:
		return story.VersionDraft, nil
	case story.VersionPublished:
		return story.VersionPublished, nil
	default:
		return "", fmt.Errorf("version must be %q or %q", story.VersionDraft, story.VersionPublished)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeStoryError maps the content store error taxonomy onto the record
// endpoint's status codes.
func (api *API) writeStoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, story.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	case errors.Is(err, story.ErrUnauthorized):
		// Misconfigured credentials are an operator problem, never a
		// visitor problem. Loud in the logs, generic on the wire.
		api.logger.Error("httpapi.upstream.unauthorized", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	default:
		api.logger.Error("httpapi.upstream.failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

// writePageError degrades the page routes: unknown slug renders the
// not-found page, anything else the static fallback.
func (api *API) writePageError(w http.ResponseWriter, slug string, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case errors.Is(err, story.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(notFoundPage))
	case errors.Is(err, story.ErrUnauthorized):
		api.logger.Error("httpapi.page.unauthorized", "slug", slug, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fallbackPage))
	default:
		api.logger.Warn("httpapi.page.degraded", "slug", slug, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fallbackPage))
	}
}
