package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	EnumsPath    string
	ItemDataPath string
	MessagesPath string
	OutputPath   string

	EnumNamespace string

	DBPath         string
	HistoryEnabled bool
	SuggestLabels  bool

	WatchIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		EnumsPath:    getEnv("ENUMS_PATH", filepath.Join(cwd, "tools", "Enums_Internal.json")),
		ItemDataPath: getEnv("ITEM_DATA_PATH", filepath.Join(cwd, "tools", "itemData.user.3.json")),
		MessagesPath: getEnv("MESSAGES_PATH", filepath.Join(cwd, "tools", "Item.msg.23.csv")),
		OutputPath:   getEnv("OUTPUT_PATH", filepath.Join(cwd, "src", "assets", "items.json")),

		EnumNamespace: getEnv("ENUM_NAMESPACE", "app.ItemDef.ID"),

		DBPath:         getEnv("DB_PATH", filepath.Join(cwd, "data", "itemgen.db")),
		HistoryEnabled: getEnvBool("HISTORY_ENABLED", true),
		SuggestLabels:  getEnvBool("SUGGEST_LABELS", true),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 5),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Require("ENUMS_PATH", c.EnumsPath); err != nil {
		return err
	}
	if err := c.Require("ITEM_DATA_PATH", c.ItemDataPath); err != nil {
		return err
	}
	if err := c.Require("MESSAGES_PATH", c.MessagesPath); err != nil {
		return err
	}
	if err := c.Require("OUTPUT_PATH", c.OutputPath); err != nil {
		return err
	}
	return c.Require("ENUM_NAMESPACE", c.EnumNamespace)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
