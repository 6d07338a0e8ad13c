package http

import (
	"net/http"
	"sort"
)

// applyHeaders sets the configured default headers first so the
// authorization, identification and content headers always win.
func (g *Gateway) applyHeaders(request *http.Request, hasBody bool) {
	defaults := g.cfg.DefaultHeaders()
	if len(defaults) > 0 {
		keys := make([]string, 0, len(defaults))
		for key := range defaults {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			request.Header.Set(key, defaults[key])
		}
	}

	request.Header.Set("Authorization", "Bearer "+g.cfg.Token())
	request.Header.Set("User-Agent", g.cfg.UserAgent())
	request.Header.Set("Accept", defaultMediaType)
	if hasBody {
		request.Header.Set("Content-Type", defaultMediaType)
	}
}
