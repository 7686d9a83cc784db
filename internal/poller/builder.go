// internal/poller/builder.go
package poller

import (
	cfg "github.com/tamzrod/statusboard/internal/config"
	"github.com/tamzrod/statusboard/internal/poller/httpcheck"
)

// Build constructs a Poller wired to the configured health endpoint.
// Config must already be validated and normalized.
func Build(c *cfg.Config) (*Poller, error) {
	client, err := httpcheck.New(httpcheck.Config{
		Endpoint: c.Source.Endpoint,
		Timeout:  c.Source.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			Endpoint: c.Source.Endpoint,
			Interval: c.Poll.Interval(),
		},
		client,
	)
}
