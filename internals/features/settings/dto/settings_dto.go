package dto

import "github.com/firmantawakal/simak-tracer-study/internals/configs"

type MailSettings struct {
	Host      string `json:"smtp_host"`
	Port      int    `json:"smtp_port"`
	User      string `json:"smtp_user"`
	Password  string `json:"smtp_password"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
}

type TokenSettings struct {
	ExpiryDays int `json:"expiry_days"`
}

type Settings struct {
	Mail      MailSettings  `json:"email"`
	Token     TokenSettings `json:"token"`
	BaseURL   string        `json:"app_base_url"`
	JWTSecret string        `json:"jwt_secret"`
}

// FromConfig hanya menampilkan rahasia dalam bentuk tersamar.
func FromConfig(cfg *configs.AppConfig, mask func(string) string) Settings {
	return Settings{
		Mail: MailSettings{
			Host:      cfg.Mail.Host,
			Port:      cfg.Mail.Port,
			User:      cfg.Mail.User,
			Password:  mask(cfg.Mail.Password),
			FromName:  cfg.Mail.FromName,
			FromEmail: cfg.Mail.FromEmail,
		},
		Token:     TokenSettings{ExpiryDays: cfg.Token.ExpiryDays},
		BaseURL:   cfg.Server.BaseURL,
		JWTSecret: mask(cfg.Auth.JWTSecret),
	}
}
