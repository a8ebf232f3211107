package restapi

import (
	"time"

	"pricesim.demo.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.IsInvalidAPIKey),
	}
}

// Close stops background work owned by the API. It is safe to call more than once.
func (api *RestAPI) Close() error {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
	return nil
}
