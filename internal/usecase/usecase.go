package usecase

import (
	"release-promoter/config"
	"release-promoter/internal/clock"
	"release-promoter/internal/githost"
	"release-promoter/internal/usecase/promotion"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	PromotionUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, host, bot githost.Host, cfg *config.Config, clk clock.Clock) InterfaceUsecase {
	return promotion.New(log, host, bot, cfg, clk)
}
