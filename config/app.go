package config

type Server struct {
	Port        string `env:"SERVER_PORT" default:"9090"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`
}

type Gateway struct {
	Port      string `env:"GATEWAY_PORT" default:"8080"`
	ServerURL string `env:"SHAREIT_SERVER_URL" default:"http://localhost:9090"`
	Env       string `env:"APP_ENV" default:"dev"`
}
