package httputil

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"assessor_gateway/config"
)

// NewProbeClient builds the client the scheduler uses to check assessor
// site availability. Redirects are not followed so a 301/302 shows up as-is.
func NewProbeClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// NewMailClient builds the resty client for the transactional-email API.
func NewMailClient(cfg *config.MailConfig) *resty.Client {
	return resty.New().
		SetBaseURL(cfg.APIBase).
		SetBasicAuth("api", cfg.APIKey).
		SetTimeout(30 * time.Second)
}
