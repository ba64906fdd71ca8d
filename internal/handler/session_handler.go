package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sylar-lab/sharks-backend-go/internal/middleware"
	"github.com/sylar-lab/sharks-backend-go/internal/session"
	"github.com/sylar-lab/sharks-backend-go/pkg/response"
)

// SessionHandler handles dashboard session creation
type SessionHandler struct {
	manager *session.Manager
	secret  []byte
	ttl     time.Duration
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *session.Manager, secret []byte, ttl time.Duration) *SessionHandler {
	return &SessionHandler{manager: manager, secret: secret, ttl: ttl}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.manager.Create()

	token, err := middleware.IssueSessionToken(h.secret, sess.ID, h.ttl)
	if err != nil {
		response.InternalError(c, "Failed to issue session token", err)
		return
	}

	response.Success(c, gin.H{
		"session_id": sess.ID.String(),
		"token":      token,
	})
}
