package worker

import (
	"github.com/spec-kit/reading-service/internal/service"
)

// StartPointsWorker registers gamification event handlers.
func StartPointsWorker(pointsService *service.PointsService) {
	if pointsService == nil {
		return
	}
	pointsService.RegisterHandlers()
}
