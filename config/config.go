package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"medstock/internal/domain"
)

// Config armazena todas as configurações do aplicativo medstock.
type Config struct {
	// Geral
	Environment string
	LogLevel    string
	LogFile     string // Vazio: logs no stderr (a TUI ocupa o stdout)

	// Visão
	LowStockThreshold int
	ExpiringSoonDays  int
	DefaultSort       domain.SortMode
	DefaultFilter     domain.FilterMode

	// Sessão de edição
	StrictQuantity bool
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env já deve ter sido carregado pelo main (godotenv).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "medstock.log")
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("EXPIRING_SOON_DAYS", 7)
	v.SetDefault("DEFAULT_SORT", "name")
	v.SetDefault("DEFAULT_FILTER", "all")
	v.SetDefault("STRICT_QUANTITY", false)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	sortMode, err := domain.ParseSortMode(v.GetString("DEFAULT_SORT"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_SORT: %w", err)
	}
	filterMode, err := domain.ParseFilterMode(v.GetString("DEFAULT_FILTER"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_FILTER: %w", err)
	}

	cfg := &Config{
		Environment:       v.GetString("ENV"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:           v.GetString("LOG_FILE"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		ExpiringSoonDays:  v.GetInt("EXPIRING_SOON_DAYS"),
		DefaultSort:       sortMode,
		DefaultFilter:     filterMode,
		StrictQuantity:    v.GetBool("STRICT_QUANTITY"),
	}

	if cfg.LowStockThreshold < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD deve ser >= 0, recebido %d", cfg.LowStockThreshold)
	}
	if cfg.ExpiringSoonDays < 0 {
		return nil, fmt.Errorf("EXPIRING_SOON_DAYS deve ser >= 0, recebido %d", cfg.ExpiringSoonDays)
	}

	return cfg, nil
}
