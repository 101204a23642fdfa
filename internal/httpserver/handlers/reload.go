package handlers

import (
	"net/http"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/logger"
)

// Reload triggers a manual reload of every declared collection
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		triggered := 0
		for kind, trigger := range d.ReloadTriggers {
			select {
			case trigger <- struct{}{}:
				triggered++
				d.Logger.Info("manual reload triggered via endpoint",
					logger.String("kind", string(kind)),
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("reload already in progress",
					logger.String("kind", string(kind)),
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		if triggered > 0 {
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		} else {
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
