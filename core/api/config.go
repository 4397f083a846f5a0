package api

import "errors"

// Config holds credentials and endpoint settings for the remote service.
type Config struct {
	// Token is the authorization token sent with every request.
	Token string `mapstructure:"token" default:""`
	// UserAgent must match the browser session the token was issued for.
	UserAgent string `mapstructure:"user_agent" default:""`
	// BaseURL is the API root. Only overridden in tests.
	BaseURL string `mapstructure:"base_url" default:"https://apiv3.fansly.com/api/v1"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that the credential fields are present.
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.New("api.token is required")
	}
	if c.UserAgent == "" {
		return errors.New("api.user_agent is required")
	}
	return nil
}
