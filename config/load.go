package config

import (
	"log/slog"
	"os"
)

func LoadServer() Server {
	return Server{
		Port:        getenv("SERVER_PORT", "9090"),
		DatabaseURL: must("DATABASE_URL"),
		Env:         getenv("APP_ENV", "dev"),
	}
}

func LoadGateway() Gateway {
	return Gateway{
		Port:      getenv("GATEWAY_PORT", "8080"),
		ServerURL: getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Env:       getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
