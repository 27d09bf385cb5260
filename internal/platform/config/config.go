package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Settlement engine
	SettlementRunTimeout time.Duration
	FundFeeRateDefault   decimal.Decimal

	// Operator briefings; empty disables Slack delivery.
	SlackWebhookURL string
}

// LoadConfig loads configuration from environment variables and .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "credot-api")
	viper.SetDefault("SETTLEMENT_RUN_TIMEOUT", "10s")
	viper.SetDefault("FUTURE_FUND_FEE_RATE", "0.001")
	viper.SetDefault("SLACK_WEBHOOK_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	runTimeoutStr := viper.GetString("SETTLEMENT_RUN_TIMEOUT")
	runTimeout, err := time.ParseDuration(runTimeoutStr)
	if err != nil {
		runTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for SETTLEMENT_RUN_TIMEOUT ('%s'). Defaulting to %s.\n", runTimeoutStr, runTimeout.String())
	}
	cfg.SettlementRunTimeout = runTimeout

	feeRateStr := viper.GetString("FUTURE_FUND_FEE_RATE")
	feeRate, err := decimal.NewFromString(feeRateStr)
	if err != nil {
		feeRate = decimal.NewFromFloat(0.001)
		log.Printf("Warning: Invalid value for FUTURE_FUND_FEE_RATE ('%s'). Defaulting to %s.\n", feeRateStr, feeRate.String())
	}
	cfg.FundFeeRateDefault = feeRate

	cfg.SlackWebhookURL = viper.GetString("SLACK_WEBHOOK_URL")

	return cfg, nil
}
