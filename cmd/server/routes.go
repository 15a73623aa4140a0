package main

import (
	"log/slog"
	"net/http"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/files"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/lifecycle"
	internalroutes "github.com/khunghaydien/AI-Scanner-Backend/internal/routes"
	pkgroutes "github.com/khunghaydien/AI-Scanner-Backend/pkg/routes"
)

// buildRouter registers all route groups and health endpoints.
func buildRouter(lc *lifecycle.Coordinator, fileSys files.System, cfg *config.Config, logger *slog.Logger) http.Handler {
	router := internalroutes.New(logger)

	router.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	})

	router.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			if !lc.Ready() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	})

	handler := fileSys.Handler(cfg.Storage.MaxUploadSizeBytes())
	router.RegisterGroup(handler.Routes())

	return router.Build()
}
