package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	VNPay    VNPayConfig
	Shipping ShippingConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type VNPayConfig struct {
	TmnCode    string `mapstructure:"tmn_code"`
	HashSecret string `mapstructure:"hash_secret"`
	PayURL     string `mapstructure:"pay_url"`
	ReturnURL  string `mapstructure:"return_url"`
}

// ShippingConfig is loaded from config/config.toml: a province-to-fee table
// plus the fee charged for provinces not in the table.
type ShippingConfig struct {
	DefaultFee int64            `mapstructure:"default_fee"`
	Zones      map[string]int64 `mapstructure:"zones"`
}

type DefaultsConfig struct {
	AdminPassword string `mapstructure:"admin_password"`
	AdminEmail    string `mapstructure:"admin_email"`
	StoreName     string `mapstructure:"store_name"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Enable reading from OS environment variables as fallback/override
	viper.AutomaticEnv()

	viper.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	viper.BindEnv("DATABASE_URL")

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		VNPay: VNPayConfig{
			TmnCode:    viper.GetString("VNP_TMN_CODE"),
			HashSecret: viper.GetString("VNP_HASH_SECRET"),
			PayURL:     viper.GetString("VNP_PAY_URL"),
			ReturnURL:  viper.GetString("VNP_RETURN_URL"),
		},
		Defaults: DefaultsConfig{
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			StoreName:     viper.GetString("STORE_NAME"),
		},
	}

	// Load TOML config for the shipping fee table
	shippingViper := viper.New()
	shippingViper.SetConfigFile("config/config.toml")
	shippingViper.SetConfigType("toml")
	if err := shippingViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using default shipping fee only: %v", err)
	} else {
		if err := shippingViper.UnmarshalKey("shipping", &AppConfig.Shipping); err != nil {
			log.Printf("Error: Failed to unmarshal shipping config from TOML: %v", err)
		}
	}
	if AppConfig.Shipping.DefaultFee == 0 {
		AppConfig.Shipping.DefaultFee = viper.GetInt64("DEFAULT_SHIPPING_FEE")
	}

	log.Printf("Configuration loaded successfully:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- VNPay TmnCode: %s", AppConfig.VNPay.TmnCode)
	log.Printf("- VNPay Secret: %s", func() string {
		if AppConfig.VNPay.HashSecret != "" {
			return "SET"
		}
		return "NOT SET"
	}())
	log.Printf("- Shipping zones: %d (default fee %d)", len(AppConfig.Shipping.Zones), AppConfig.Shipping.DefaultFee)
}
