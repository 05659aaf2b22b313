package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"codeshop.db"`

	PayOS PayOS `envPrefix:"PAYOS_"`
	Admin Admin `envPrefix:"ADMIN_"`
}

type PayOS struct {
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://api-merchant.payos.vn"`
	ClientID    string `env:"CLIENT_ID"`
	APIKey      string `env:"API_KEY"`
	ChecksumKey string `env:"CHECKSUM_KEY"`
}

type Admin struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD"`
	// gates the licensing reset endpoint, presented as the x-admin-secret header
	APISecret string `env:"API_SECRET"`
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
