package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"garage-booking-service/config"

	"github.com/sirupsen/logrus"
)

// ErrVerificationFailed is returned when the captcha provider rejects the token
var ErrVerificationFailed = errors.New("captcha verification failed")

// Client verifies captcha tokens against an external provider. Verification
// is a gate in front of booking confirmation, not part of the booking state
// itself. When no secret is configured the client is disabled and every
// token passes.
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.CaptchaConfig, log *logrus.Logger) *Client {
	return &Client{
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Enabled reports whether verification is configured
func (c *Client) Enabled() bool {
	return c.secret != "" && c.verifyURL != ""
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the token with the provider. Provider downtime is surfaced
// as an error rather than silently letting the request through.
func (c *Client) Verify(ctx context.Context, token string) error {
	if !c.Enabled() {
		return nil
	}
	if token == "" {
		return ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("Captcha provider unavailable: %+v", err)
		return fmt.Errorf("captcha provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha provider returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	if !result.Success {
		c.log.Warnf("Captcha rejected: %v", result.ErrorCodes)
		return ErrVerificationFailed
	}

	return nil
}
