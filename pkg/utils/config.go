package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Settlement SettlementConfig
	Refund     RefundPolicyConfig
	Pricing    PricingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// SettlementConfig carries the platform-level ledger account codes and the
// fallback commission rate used when an organization has no plan rate.
type SettlementConfig struct {
	DefaultCommissionPercent  float64
	RevenueAccountCode        string
	CashAccountCode           string
	RefundClearingAccountCode string
	RefundPayableAccountCode  string
}

// RefundPolicyConfig is the tiered cancellation policy: hours-before-start
// thresholds mapped to cancellation fee percentages.
type RefundPolicyConfig struct {
	Tier1Hours      float64
	Tier1FeePercent float64
	Tier2Hours      float64
	Tier2FeePercent float64
	Tier3FeePercent float64
}

// PricingConfig holds the holiday calendar as YYYY-MM-DD dates. HOLIDAY
// pricing rules only ever match dates listed here.
type PricingConfig struct {
	Holidays []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("COMMISSION_PERCENT", 10.0)
	viper.SetDefault("REVENUE_ACCOUNT_CODE", "PLAT-REV")
	viper.SetDefault("CASH_ACCOUNT_CODE", "PLAT-CASH")
	viper.SetDefault("REFUND_CLEARING_ACCOUNT_CODE", "PLAT-REFUND-CLR")
	viper.SetDefault("REFUND_PAYABLE_ACCOUNT_CODE", "PLAT-REFUND-PAY")
	viper.SetDefault("REFUND_TIER1_HOURS", 24.0)
	viper.SetDefault("REFUND_TIER1_FEE_PERCENT", 0.0)
	viper.SetDefault("REFUND_TIER2_HOURS", 4.0)
	viper.SetDefault("REFUND_TIER2_FEE_PERCENT", 50.0)
	viper.SetDefault("REFUND_TIER3_FEE_PERCENT", 100.0)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Settlement: SettlementConfig{
			DefaultCommissionPercent:  viper.GetFloat64("COMMISSION_PERCENT"),
			RevenueAccountCode:        viper.GetString("REVENUE_ACCOUNT_CODE"),
			CashAccountCode:           viper.GetString("CASH_ACCOUNT_CODE"),
			RefundClearingAccountCode: viper.GetString("REFUND_CLEARING_ACCOUNT_CODE"),
			RefundPayableAccountCode:  viper.GetString("REFUND_PAYABLE_ACCOUNT_CODE"),
		},
		Refund: RefundPolicyConfig{
			Tier1Hours:      viper.GetFloat64("REFUND_TIER1_HOURS"),
			Tier1FeePercent: viper.GetFloat64("REFUND_TIER1_FEE_PERCENT"),
			Tier2Hours:      viper.GetFloat64("REFUND_TIER2_HOURS"),
			Tier2FeePercent: viper.GetFloat64("REFUND_TIER2_FEE_PERCENT"),
			Tier3FeePercent: viper.GetFloat64("REFUND_TIER3_FEE_PERCENT"),
		},
		Pricing: PricingConfig{
			Holidays: splitDates(viper.GetString("HOLIDAYS")),
		},
	}

	return config, nil
}

func splitDates(raw string) []string {
	if raw == "" {
		return nil
	}

	var dates []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			dates = append(dates, trimmed)
		}
	}
	return dates
}
