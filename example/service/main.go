package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/vovanwin/flaggen/example/service/internal/config"
	"github.com/vovanwin/flaggen/example/service/internal/server"
)

//go:generate go run github.com/vovanwin/flaggen/cmd/flaggen generate --schema=./configs/flaggen.toml --output=./internal/config --package=config

func main() {
	// Флаги командной строки, затем переменные окружения, затем значения по умолчанию
	cfg := config.ParseConfig()

	srv := server.New(cfg)
	log.Printf("env=%s log=%s listen=%s", cfg.Env, srv.LogLevel(), srv.ListenAddr())

	if err := srv.HTTPServer().ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("сервер остановлен: %v", err)
	}
}
