package oauth

// ClientConfig holds the application's credentials for any provider.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// AircallConfig holds Aircall OAuth configuration.
type AircallConfig struct {
	ClientID     string   `env:"AIRCALL_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"AIRCALL_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"AIRCALL_OAUTH_REDIRECT_URL" envDefault:""`
	Host         string   `env:"AIRCALL_API_HOST" envDefault:"https://api.aircall.io/v1"`
	Scopes       []string `env:"AIRCALL_OAUTH_SCOPES" envSeparator:","`
}
