package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

type Config struct {
	conf.Version
	Web     Web
	DB      DB
	Session Session
	Cors    Cors
	Order   Order
	Media   Media
	Admin   Admin
	Rate    Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:3000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:30s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
	StaticDir       string        `conf:"default:./public"`
	MaxUploadBytes  int64         `conf:"default:10485760"`
	// UploadTimeout replaces ReadTimeout and WriteTimeout on the upload route.
	// It must exceed Media.Timeout for a slow host to surface as an error response.
	UploadTimeout   time.Duration `conf:"default:90s"`
}

type DB struct {
	URL          string `conf:"mask"`
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:store"`
	DisableTLS   bool   `conf:"default:false"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:10"`
	Migrate      bool   `conf:"default:true"`
}

type Session struct {
	Lifetime   time.Duration `conf:"default:720h"`
	CookieName string        `conf:"default:store_session"`
	Secure     bool          `conf:"default:false"`
	Store      string        `conf:"default:memory,help:memory or postgres"`
}

type Cors struct {
	Origin string
}

type Order struct {
	IntakeURL string        `conf:"default:https://formspree.io/f/xpwjbozp"`
	Currency  string        `conf:"default:грн"`
	Timeout   time.Duration `conf:"default:15s"`
}

type Media struct {
	Provider   string        `conf:"default:cloudinary,help:cloudinary or gcs"`
	Folder     string        `conf:"default:my-online-store"`
	Timeout    time.Duration `conf:"default:60s"`
	Cloudinary Cloudinary
	GCS        GCS
}

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string `conf:"mask"`
}

type GCS struct {
	Bucket        string
	PublicBaseURL string `conf:"default:https://storage.googleapis.com"`
}

type Admin struct {
	// TokenHash is a bcrypt hash of the bearer token allowed to replace the catalog.
	// Empty leaves the catalog writable by anyone.
	TokenHash string `conf:"mask"`
}

type Rate struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:2s"`
	Expiry   time.Duration `conf:"default:10m"`
}
