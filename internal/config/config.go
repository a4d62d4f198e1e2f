package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names for the database credentials. Both are required
// by every client operation; there are no default or partial credentials.
const (
	EnvUsername = "mongo_username"
	EnvPassword = "mongo_password"
)

// MongoConfig describes how to address and authenticate to the database
// endpoint. It is built once per invocation and passed by value from there on.
type MongoConfig struct {
	Username               string
	Password               string
	Host                   string
	Port                   int
	Database               string
	Collection             string
	ServerSelectionTimeout time.Duration
}

// LaunchConfig holds everything the environment launcher needs.
type LaunchConfig struct {
	EngineBin   string
	ComposeFile string // relative to the base directory
	SettleDelay time.Duration
}

// loadEnv primes the environment for a Load call: best-effort .env load plus
// the fixed defaults. A missing .env file is fine, the environment may
// already carry the values; repeated calls are harmless.
func loadEnv() {
	_ = godotenv.Load()
	viper.AutomaticEnv()

	viper.SetDefault("MONGO_HOST", "localhost")
	viper.SetDefault("MONGO_PORT", 27017)
	viper.SetDefault("MONGO_DATABASE", "fin")
	viper.SetDefault("MONGO_COLLECTION", "transacoes")
	viper.SetDefault("MONGO_SERVER_SELECTION_TIMEOUT_MS", 5000)
	viper.SetDefault("CONTAINER_ENGINE", "docker")
	viper.SetDefault("COMPOSE_FILE", "container/mongo.yml")
	viper.SetDefault("SETTLE_DELAY_SECONDS", 5)
}

// LoadMongo reads the connection descriptor from the environment. Missing or
// empty credentials are a configuration error; no connection attempt must be
// made after that.
func LoadMongo() (MongoConfig, error) {
	loadEnv()

	// credentials are read verbatim: the variable names are lowercase, which
	// viper's env lookup would fold away
	cfg := MongoConfig{
		Username:               os.Getenv(EnvUsername),
		Password:               os.Getenv(EnvPassword),
		Host:                   viper.GetString("MONGO_HOST"),
		Port:                   viper.GetInt("MONGO_PORT"),
		Database:               viper.GetString("MONGO_DATABASE"),
		Collection:             viper.GetString("MONGO_COLLECTION"),
		ServerSelectionTimeout: time.Duration(viper.GetInt("MONGO_SERVER_SELECTION_TIMEOUT_MS")) * time.Millisecond,
	}
	if cfg.Username == "" || cfg.Password == "" {
		return MongoConfig{}, fmt.Errorf("MongoDB credentials not found in environment variables: set %s and %s (a .env file works too)", EnvUsername, EnvPassword)
	}
	return cfg, nil
}

// LoadLaunch reads the launcher settings. Everything has a default; the
// launcher never needs database credentials.
func LoadLaunch() LaunchConfig {
	loadEnv()

	return LaunchConfig{
		EngineBin:   viper.GetString("CONTAINER_ENGINE"),
		ComposeFile: viper.GetString("COMPOSE_FILE"),
		SettleDelay: time.Duration(viper.GetInt("SETTLE_DELAY_SECONDS")) * time.Second,
	}
}

// URI builds the connection string for the configured endpoint.
func (c MongoConfig) URI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%d/", c.Username, c.Password, c.Host, c.Port)
}
