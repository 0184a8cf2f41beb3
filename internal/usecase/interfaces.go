package usecase

import (
	"context"

	"release-promoter/internal/entities"
)

// PromotionUsecaseInterface abstracts the release promotion pipeline for the delivery layer.
type PromotionUsecaseInterface interface {
	Run(ctx context.Context, req entities.DeploymentRequest) (*entities.DeploymentOutcome, error)
}
