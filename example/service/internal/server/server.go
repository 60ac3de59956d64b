package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vovanwin/flaggen/example/service/internal/config"
)

type Server struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// LogLevel возвращает уровень логирования: в prod форсируем error, в stg — warn
func (s *Server) LogLevel() config.LogLevel {
	switch s.cfg.Env {
	case config.Envprod:
		return config.LogLevelerror
	case config.Envstg:
		return config.LogLevelwarn
	default:
		return s.cfg.Log.Level
	}
}

// ListenAddr возвращает адрес
func (s *Server) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
}

type health struct {
	Status  string `json:"status"`
	Env     string `json:"env"`
	Metrics bool   `json:"metrics,omitempty"`
}

// HealthHandler возвращает хендлер для health check
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(health{
			Status:  "ok",
			Env:     s.cfg.Env.String(),
			Metrics: s.cfg.Features.EnableMetrics,
		})
	}
}

// DSN возвращает строку подключения к БД. Пароль опционален.
func (s *Server) DSN() string {
	db := s.cfg.Db
	user := url.User(db.User)
	if db.Password != nil {
		user = url.UserPassword(db.User, *db.Password)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: fmt.Sprintf("pool_size=%d", db.PoolSize),
	}
	return u.String()
}

// HTTPServer собирает http.Server с таймаутами из конфигурации
func (s *Server) HTTPServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /health", s.HealthHandler())
	return &http.Server{
		Addr:         s.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}
