package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		School       SchoolConfig
		Telemetry    TelemetryConfig
		Admin        AdminConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugAddress       string
		ReadTimeout        time.Duration
		WriteTimeout       time.Duration
		ShutdownTimeout    time.Duration
		DisableRequestLogs bool
	}

	SchoolConfig struct {
		Timezone string
	}

	TelemetryConfig struct {
		Enabled bool
	}

	// AdminConfig describes the account seeded at startup. PasswordHash wins over Password.
	AdminConfig struct {
		Username     string
		Password     string
		PasswordHash string
	}
)

// NewConfig reads the configuration from the environment (DEV (local; default), TEST, QA, PROD).
// Values are read from `config/.env.<env>` first if that file exists, then from `<ENV>_*` variables.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", false)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Tundavala API")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbar.token", "")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugAddress", ":4000")
	conf.SetDefault("server.readTimeout", 5*time.Second)
	conf.SetDefault("server.writeTimeout", 10*time.Second)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableRequestLogs", false)
	conf.SetDefault("school.timezone", "Africa/Luanda")
	conf.SetDefault("telemetry.enabled", false)
	conf.SetDefault("admin.username", "")
	conf.SetDefault("admin.password", "")
	conf.SetDefault("admin.passwordHash", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	host, _ := os.Hostname()

	return &Config{
		Env:          strings.ToLower(env),
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbar.token"),
		Server: ServerConfig{
			Host:               host,
			Address:            conf.GetString("server.address"),
			DebugAddress:       conf.GetString("server.debugAddress"),
			ReadTimeout:        conf.GetDuration("server.readTimeout"),
			WriteTimeout:       conf.GetDuration("server.writeTimeout"),
			ShutdownTimeout:    conf.GetDuration("server.shutdownTimeout"),
			DisableRequestLogs: conf.GetBool("server.disableRequestLogs"),
		},
		School: SchoolConfig{
			Timezone: conf.GetString("school.timezone"),
		},
		Telemetry: TelemetryConfig{
			Enabled: conf.GetBool("telemetry.enabled"),
		},
		Admin: AdminConfig{
			Username:     conf.GetString("admin.username"),
			Password:     conf.GetString("admin.password"),
			PasswordHash: conf.GetString("admin.passwordHash"),
		},
	}
}

// NewTestConfig returns the configuration used by test suites: no network side effects, no request logs.
func NewTestConfig() *Config {
	return &Config{
		Env:      "test",
		Build:    "test",
		AppName:  "Tundavala API",
		TestMode: true,
		Server: ServerConfig{
			Address:            ":0",
			ShutdownTimeout:    time.Second,
			DisableRequestLogs: true,
		},
		School: SchoolConfig{Timezone: "Africa/Luanda"},
	}
}
