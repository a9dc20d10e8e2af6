package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
	VAT     VATConfig
	Captcha CaptchaConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type BookingConfig struct {
	HoldTTL time.Duration
}

type VATConfig struct {
	Registered  bool
	DefaultRate int // percent, applied when a line carries no explicit rate
}

type CaptchaConfig struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	holdTTL, err := time.ParseDuration(viper.GetString("BOOKING_HOLD_TTL"))
	if err != nil {
		holdTTL = 10 * time.Minute
	}

	captchaTimeout, err := time.ParseDuration(viper.GetString("CAPTCHA_TIMEOUT"))
	if err != nil {
		captchaTimeout = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			HoldTTL: holdTTL,
		},
		VAT: VATConfig{
			Registered:  viper.GetBool("VAT_REGISTERED"),
			DefaultRate: viper.GetInt("VAT_DEFAULT_RATE"),
		},
		Captcha: CaptchaConfig{
			Secret:    viper.GetString("CAPTCHA_SECRET"),
			VerifyURL: viper.GetString("CAPTCHA_VERIFY_URL"),
			Timeout:   captchaTimeout,
		},
	}

	return config, nil
}
