package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Database  Database  `envPrefix:"DATABASE_"`
	Stripe    Stripe    `envPrefix:"STRIPE_"`
	Resend    Resend    `envPrefix:"RESEND_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Admin     Admin     `envPrefix:"ADMIN_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"URL" envDefault:"storefront.db"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	PublicKey     string `env:"PUBLIC_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Resend struct {
	APIKey      string `env:"API_KEY"`
	SenderEmail string `env:"SENDER_EMAIL"`
}

// Storage holds the two file roots. Purchasable files must never be
// reachable through static serving; images are served from PublicDir.
type Storage struct {
	ProductsDir string `env:"PRODUCTS_DIR" envDefault:"."`
	PublicDir   string `env:"PUBLIC_DIR" envDefault:"public"`
}

type Admin struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type RateLimit struct {
	RPS float64 `env:"RPS" envDefault:"10"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
