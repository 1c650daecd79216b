package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/service"
	"go.uber.org/zap"
)

type ChatHandler struct {
	orchestrator *service.Orchestrator
	logger       *zap.Logger
}

func NewChatHandler(orchestrator *service.Orchestrator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// HandleMessage is the single chat turn endpoint. The orchestrator converts
// every internal failure to a user-facing message, so this always returns 200
// for well-formed requests.
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var req domain.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	reply := h.orchestrator.HandleMessage(c.Request.Context(), req.UserID, req.Message)

	c.JSON(http.StatusOK, reply)
}
