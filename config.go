package main

import (
	"os"
	"strconv"

	"github.com/aquilax/postboard/api/versatile"
	"github.com/aquilax/postboard/board"
	"github.com/joho/godotenv"
)

const envPrefix = "POSTBOARD_"

type Config struct {
	Server       string
	API          string
	Database     string
	Dsn          string
	Language     string
	Limit        int
	PostCooldown string
	LogLevel     string
	Offline      bool
	Title        string
	Description  string
	AuthorName   string
	AuthorEmail  string
}

func NewConfig() *Config {
	return &Config{
		Server:       ":8080",
		API:          versatile.DefaultBaseURL,
		Database:     "sqlite",
		Dsn:          "./postboard.sqlite",
		Language:     "en",
		Limit:        board.DefaultLimit,
		PostCooldown: "",
		LogLevel:     "info",
		Title:        "postboard",
		Description:  "A tiny posting board",
	}
}

// Load reads .env files and POSTBOARD_* variables over the defaults. PORT
// overrides the listen address.
func (c *Config) Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return err
	}
	c.Server = getEnv("SERVER", c.Server)
	c.API = getEnv("API", c.API)
	c.Database = getEnv("DATABASE", c.Database)
	c.Dsn = getEnv("DSN", c.Dsn)
	c.Language = getEnv("LANGUAGE", c.Language)
	c.Limit = getEnvAsInt("LIMIT", c.Limit)
	c.PostCooldown = getEnv("POST_COOLDOWN", c.PostCooldown)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Offline = getEnvAsBool("OFFLINE", c.Offline)
	c.Title = getEnv("TITLE", c.Title)
	c.Description = getEnv("DESCRIPTION", c.Description)
	c.AuthorName = getEnv("AUTHOR_NAME", c.AuthorName)
	c.AuthorEmail = getEnv("AUTHOR_EMAIL", c.AuthorEmail)
	if port := os.Getenv("PORT"); port != "" {
		c.Server = ":" + port
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return val
	}
	return defaultVal
}
