package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/assignment"
	"user-registry-api/internal/interface/api/rest/middleware"
)

type NotificationController struct {
	notifier ports.Notifier
	logger   *zap.Logger
}

func NewNotificationController(
	r *gin.Engine,
	notifier ports.Notifier,
	logger *zap.Logger,
	tokens ports.TokenIssuer,
) *NotificationController {
	nc := &NotificationController{
		notifier: notifier,
		logger:   logger,
	}

	r.POST(RouteAssignmentNotify, middleware.AuthMiddleware(tokens), nc.NotifyTrainerAssignedHandler)

	return nc
}

// NotifyTrainerAssignedHandler answers 202 once the mail is queued; delivery
// happens in the background.
func (nc *NotificationController) NotifyTrainerAssignedHandler(c *gin.Context) {
	var req assignment.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	err := nc.notifier.NotifyTrainerAssigned(
		c.Request.Context(),
		domain.ID(req.TrainerID),
		domain.ID(req.ApprenticeID),
	)
	if err != nil {
		writeError(c, nc.logger, "NotifyTrainerAssigned()", err)
		return
	}

	c.JSON(http.StatusAccepted, assignment.NotifyResponse{Message: assignment.MessageQueued})
}
