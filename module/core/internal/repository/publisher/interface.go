package publisher

import (
	"context"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
)

type TransitionPublisher interface {
	PublishTransition(ctx context.Context, tr *domain.Transition) error
}
