package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Providers struct {
		Gemini struct {
			APIKey      string  `mapstructure:"-"`
			Model       string  `mapstructure:"model"`
			Temperature float32 `mapstructure:"temperature"`
		} `mapstructure:"gemini"`
		Search struct {
			APIKey     string        `mapstructure:"-"`
			BaseURL    string        `mapstructure:"baseURL"`
			MaxResults int           `mapstructure:"maxResults"`
			Timeout    time.Duration `mapstructure:"timeout"`
		} `mapstructure:"search"`
		Photos struct {
			AccessKey string        `mapstructure:"-"`
			BaseURL   string        `mapstructure:"baseURL"`
			Timeout   time.Duration `mapstructure:"timeout"`
		} `mapstructure:"photos"`
		Weather struct {
			GeocodingURL string        `mapstructure:"geocodingURL"`
			ForecastURL  string        `mapstructure:"forecastURL"`
			Timeout      time.Duration `mapstructure:"timeout"`
		} `mapstructure:"weather"`
	} `mapstructure:"providers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	// Provider credentials only ever come from the environment. A missing
	// photo key is a supported degraded mode (deterministic placeholders);
	// missing Gemini or search keys degrade those stages at request time.
	config.Providers.Gemini.APIKey = os.Getenv("GOOGLE_GEMINI_API_KEY")
	config.Providers.Search.APIKey = os.Getenv("TAVILY_API_KEY")
	config.Providers.Photos.AccessKey = os.Getenv("UNSPLASH_ACCESS_KEY")

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
