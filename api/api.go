package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/online-store/api/middleware"
	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/core/card"
	"github.com/irsalhamdi/online-store/core/cart"
	"github.com/irsalhamdi/online-store/core/checkout"
	"github.com/irsalhamdi/online-store/core/media"
	"github.com/irsalhamdi/online-store/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin     string
	Log            logrus.FieldLogger
	Session        *scs.SessionManager
	Cards          card.Store
	Submitter      checkout.Submitter
	Uploader       media.Uploader
	MaxUploadBytes int64
	UploadTimeout  time.Duration
	AdminTokenHash string
	Limiter        *rate.Limiter
	StaticDir      string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	var limit web.Middleware
	if cfg.Limiter != nil {
		limit = middleware.RateLimit(cfg.Limiter)
	}
	admin := middleware.Admin(cfg.AdminTokenHash)

	store := cart.NewStore(cart.SessionStorage{Session: cfg.Session}, cfg.Log)
	flow := &checkout.Flow{
		Store:     store,
		Submitter: cfg.Submitter,
		Log:       cfg.Log,
	}

	a.Handle(http.MethodGet, "/api/cart", cart.HandleShow(store))
	a.Handle(http.MethodDelete, "/api/cart", cart.HandleDelete(store))
	a.Handle(http.MethodPut, "/api/cart/items", cart.HandleCreateItem(store))
	a.Handle(http.MethodPatch, "/api/cart/items/{index:[0-9]+}", cart.HandleUpdateItem(store))
	a.Handle(http.MethodDelete, "/api/cart/items/{index:[0-9]+}", cart.HandleDeleteItem(store))

	a.Handle(http.MethodPost, "/api/checkout", checkout.HandleCheckout(flow), limit)

	a.Handle(http.MethodGet, "/api/cards", card.HandleList(cfg.Cards))
	a.Handle(http.MethodPost, "/api/cards", card.HandleReplace(cfg.Cards, cfg.Log), admin)

	a.Handle(http.MethodPost, "/api/upload", media.HandleUpload(cfg.Uploader, cfg.MaxUploadBytes), limit, middleware.Deadline(cfg.UploadTimeout))

	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err != nil {
			a.log.WithError(err).Warn("static files disabled")
		} else {
			a.Router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods(http.MethodGet, http.MethodHead)
		}
	}

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
