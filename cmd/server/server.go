package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/online-store/api"
	"github.com/irsalhamdi/online-store/config"
	"github.com/irsalhamdi/online-store/core/card"
	"github.com/irsalhamdi/online-store/core/checkout"
	"github.com/irsalhamdi/online-store/core/media"
	"github.com/irsalhamdi/online-store/database"
	"github.com/irsalhamdi/online-store/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var build = "develop"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := Run(log); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return
		}
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server, build %s", build)
	defer logger.Info("shutdown complete")

	const prefix = "STORE"
	cfg := config.Config{
		Version: conf.Version{
			Build: build,
			Desc:  "online store: cart, checkout, catalog and media relay",
		},
	}
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return err
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	logger.Infof("startup config:\n%s", out)

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	if err := waitForDB(db); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
		logger.Info("cards table ready")
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.Name = cfg.Session.CookieName
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Session.Secure

	switch cfg.Session.Store {
	case "postgres":
		pgStore := postgresstore.New(db.DB)
		defer pgStore.StopCleanup()
		sessionManager.Store = pgStore
	case "memory", "":
	default:
		return fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	uploader, closeUploader, err := newUploader(cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to build the media uploader: %w", err)
	}
	defer closeUploader()

	if cfg.Web.UploadTimeout <= cfg.Media.Timeout {
		logger.WithFields(logrus.Fields{
			"upload_timeout": cfg.Web.UploadTimeout,
			"media_timeout":  cfg.Media.Timeout,
		}).Warn("upload route deadline does not exceed the media host timeout")
	}

	limiter := rate.NewLimiter(cfg.Rate.Burst, cfg.Rate.Expiry, rate.Every(cfg.Rate.Interval))
	defer limiter.Stop()

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:     cfg.Cors.Origin,
		Log:            logger,
		Session:        sessionManager,
		Cards:          card.NewPostgres(db),
		Submitter:      checkout.NewFormIntake(cfg.Order.IntakeURL, cfg.Order.Currency, cfg.Order.Timeout),
		Uploader:       uploader,
		MaxUploadBytes: cfg.Web.MaxUploadBytes,
		UploadTimeout:  cfg.Web.UploadTimeout,
		AdminTokenHash: cfg.Admin.TokenHash,
		Limiter:        limiter,
		StaticDir:      cfg.Web.StaticDir,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func waitForDB(db *sqlx.DB) error {
	var err error
	for attempt := 1; attempt <= 10; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = database.StatusCheck(ctx, db)
		cancel()
		if err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 200 * time.Millisecond)
	}
	return err
}

func newUploader(cfg config.Media) (media.Uploader, func(), error) {
	switch cfg.Provider {
	case "cloudinary":
		c := cfg.Cloudinary
		up, err := media.NewCloudinary(c.CloudName, c.APIKey, c.APISecret, cfg.Folder)
		if err != nil {
			return nil, nil, err
		}
		return media.WithTimeout(up, cfg.Timeout), func() {}, nil

	case "gcs":
		client, err := storage.NewClient(context.Background())
		if err != nil {
			return nil, nil, fmt.Errorf("creating storage client: %w", err)
		}
		up := media.NewGCS(client, cfg.GCS.Bucket, cfg.Folder, cfg.GCS.PublicBaseURL)
		return media.WithTimeout(up, cfg.Timeout), func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
}
