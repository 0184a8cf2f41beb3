// Package promotion contains the release promotion pipeline and its stages.
package promotion

import (
	"crypto/tls"
	"net/http"

	"release-promoter/config"
	"release-promoter/internal/clock"
	"release-promoter/internal/githost"

	"go.uber.org/zap"
)

// Usecase struct implements the promotion usecase interface.
type Usecase struct {
	log    *zap.SugaredLogger
	host   githost.Host
	bot    githost.Host
	cfg    *config.Config
	clk    clock.Clock
	health *http.Client
}

// New constructs the promotion usecase with its dependencies. The bot host
// carries a separate credential so the approving identity differs from the
// change request author.
func New(log *zap.SugaredLogger, host, bot githost.Host, cfg *config.Config, clk clock.Clock) *Usecase {
	return &Usecase{
		log:    log,
		host:   host,
		bot:    bot,
		cfg:    cfg,
		clk:    clk,
		health: newHealthClient(cfg.Health),
	}
}

func newHealthClient(cfg config.HealthConfig) *http.Client {
	client := &http.Client{}
	if cfg.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}
