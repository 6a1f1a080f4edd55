package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"webconfig/internal/bind"
	"webconfig/internal/webconfig"
)

func health(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// form serves the configuration page. A POST binds the submitted fields
// first and, on SAVE or RST, stores them. The page is rendered in both cases.
func form(cfg *webconfig.WebConfig, restart func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var fields bind.Fields

		if r.Method == "POST" {
			if err := r.ParseForm(); err != nil {
				logrus.Error("There was an error parsing the submitted form: ", err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if len(r.PostForm) > 0 {
				fields = r.PostForm
			}
		}

		// Set response headers
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		restarting, saveErr, renderErr := cfg.Respond(fields, w)
		if saveErr != nil {
			logrus.Error("There was an error saving the configuration: ", saveErr)
		}
		if renderErr != nil {
			logrus.Error("There was an error rendering the configuration form: ", renderErr)
		}

		if restarting {
			logrus.Info("Restart requested after saving the configuration.")
			restart()
		}
	})
}

func config(cfg *webconfig.WebConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" {

			// Set response headers
			w.Header().Set("Content-Type", "application/json")

			// Return json response
			if err := json.NewEncoder(w).Encode(cfg.View()); err != nil {
				logrus.Error("There was an error encoding the config for response: ", err)
				return
			}

		} else if r.Method == "DELETE" {
			if err := cfg.DeleteConfig(); err != nil {
				logrus.Error("There was an error deleting the configuration: ", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			logrus.Info("Configuration reset to defaults.")
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

// NewRouter creates the routes of the configuration service. restart is
// called after a response to a successful save with RST has been written.
func NewRouter(cfg *webconfig.WebConfig, restart func()) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/health", health).Methods("OPTIONS", "GET")
	router.Handle("/", form(cfg, restart)).Methods("GET", "POST")
	router.Handle("/config", config(cfg)).Methods("GET", "DELETE")

	return router
}

// RunServer serves handler on addr until ctx is done, then shuts down
// gracefully so responses in flight are completed.
func RunServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting Server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "error shutting down server")
	}
	return nil
}
