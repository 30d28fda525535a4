package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server holds process-level settings read from the environment.
type Server struct {
	Port         string
	Env          string
	ConfigFile   string
	StaticDir    string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoadServer reads API_PORT, API_ENV, CONFIG_FILE, STATIC_DIR, CORS_ORIGINS
// (comma-separated), READ_TIMEOUT and WRITE_TIMEOUT from the environment.
func LoadServer() Server {
	v := viper.New()
	v.SetDefault("api_port", "8080")
	v.SetDefault("api_env", "development")
	v.SetDefault("config_file", "")
	v.SetDefault("static_dir", "./web/dist")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("read_timeout", "30s")
	v.SetDefault("write_timeout", "60s")
	v.AutomaticEnv()

	return Server{
		Port:         v.GetString("api_port"),
		Env:          v.GetString("api_env"),
		ConfigFile:   v.GetString("config_file"),
		StaticDir:    v.GetString("static_dir"),
		CORSOrigins:  splitList(v.GetString("cors_origins")),
		ReadTimeout:  v.GetDuration("read_timeout"),
		WriteTimeout: v.GetDuration("write_timeout"),
	}
}

// Production reports whether the process runs with API_ENV=production.
func (s Server) Production() bool {
	return s.Env == "production"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
