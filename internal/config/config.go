package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string  `mapstructure:"APP_ENV"`
	APILatencyMS    int     `mapstructure:"API_LATENCY_MS"`
	LoginDelayMS    int     `mapstructure:"LOGIN_DELAY_MS"`
	LogoutDelayMS   int     `mapstructure:"LOGOUT_DELAY_MS"`
	CascadeClicks   bool    `mapstructure:"CASCADE_CLICKS"`
	SeedDemoData    bool    `mapstructure:"SEED_DEMO_DATA"`
	ClickRatePerSec float64 `mapstructure:"CLICK_RATE_PER_SEC"`
	ClickRateBurst  int     `mapstructure:"CLICK_RATE_BURST"`
	GeoIPDBPath     string  `mapstructure:"GEOIP_DB_PATH"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("API_LATENCY_MS", 100)
	viper.SetDefault("LOGIN_DELAY_MS", 1000)
	viper.SetDefault("LOGOUT_DELAY_MS", 500)
	viper.SetDefault("CASCADE_CLICKS", false)
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("CLICK_RATE_PER_SEC", 0)
	viper.SetDefault("CLICK_RATE_BURST", 0)
	viper.SetDefault("GEOIP_DB_PATH", "")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}

// APILatency is the artificial delay applied to every mock API call.
func (c Config) APILatency() time.Duration {
	return time.Duration(c.APILatencyMS) * time.Millisecond
}

func (c Config) LoginDelay() time.Duration {
	return time.Duration(c.LoginDelayMS) * time.Millisecond
}

func (c Config) LogoutDelay() time.Duration {
	return time.Duration(c.LogoutDelayMS) * time.Millisecond
}
