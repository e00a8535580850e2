package server

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// FilesProxyHandler streams backend-hosted files (artwork, avatars) through
// to the browser, so the backend never has to be reachable from the public
// internet. Headers describing the payload pass through unchanged.
func (s *Server) FilesProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.PathValue("path")
		if path == "" {
			http.Error(w, "404 - File Not Found", http.StatusNotFound)
			return
		}

		resp, err := s.backend.Do(r.Context(), http.MethodGet, "/api/files/"+path, r.URL.Query(), nil, nil)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("file proxy fetch failed")
			http.Error(w, "502 - Bad Gateway", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		for _, header := range []string{"Content-Type", "Content-Length", "Cache-Control", "ETag", "Last-Modified"} {
			if value := resp.Header.Get(header); value != "" {
				w.Header().Set(header, value)
			}
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("file proxy copy interrupted")
		}
	}
}
