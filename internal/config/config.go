package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

// Mirror configures the secondary real-time projection. An empty broker list
// disables mirroring entirely.
type Mirror struct {
	Brokers     []string
	OrdersTopic string
	UsersTopic  string
}

func (m Mirror) Enabled() bool { return len(m.Brokers) > 0 }

// SMTP configures the confirmation mailer. An empty host disables it.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s SMTP) Enabled() bool { return s.Host != "" }

type Google struct {
	ClientID string
}

type Orders struct {
	Prefix string
}

type Config struct {
	HTTPAddr       string
	MailWorkers    int
	AdapterTimeout time.Duration

	Pg     Postgres
	Mirror Mirror
	SMTP   SMTP
	Google Google
	Orders Orders
}

// Load keeps the fatal-on-error API for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:       envDefault("HTTP_ADDR", ":8080"),
		MailWorkers:    envInt("MAIL_WORKERS", 2),
		AdapterTimeout: envDuration("ADAPTER_TIMEOUT", 3*time.Second),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Mirror: Mirror{
			Brokers:     splitCSV(strings.TrimSpace(os.Getenv("MIRROR_BROKERS"))),
			OrdersTopic: envDefault("MIRROR_ORDERS_TOPIC", "orders.mirror"),
			UsersTopic:  envDefault("MIRROR_USERS_TOPIC", "users.mirror"),
		},

		SMTP: SMTP{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:     envInt("SMTP_PORT", 587),
			User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
			Password: strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
			From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		},

		Google: Google{
			ClientID: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		},

		Orders: Orders{
			Prefix: envDefault("ORDER_PREFIX", "AADYA"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	if cfg.MailWorkers <= 0 {
		log.Printf("MAIL_WORKERS is %d, adjusting to 1", cfg.MailWorkers)
		cfg.MailWorkers = 1
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":          c.Pg.Host,
		"PG_DB":            c.Pg.DB,
		"PG_USER":          c.Pg.User,
		"PG_PASSWORD":      c.Pg.Password,
		"GOOGLE_CLIENT_ID": c.Google.ClientID,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if !c.Mirror.Enabled() {
		log.Printf("MIRROR_BROKERS not set, mirror sync disabled")
	}
	if !c.SMTP.Enabled() {
		log.Printf("SMTP_HOST not set, order confirmation mail disabled")
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

// envDuration supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
