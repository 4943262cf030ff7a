package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/http/response"
	"github.com/soundfield/attune-backend/internal/services"
)

type TuningHandler struct {
	tuningService services.TuningService
}

func NewTuningHandler(tuningService services.TuningService) *TuningHandler {
	return &TuningHandler{tuningService: tuningService}
}

// POST /tuning/start
// body: { "domains": ["body", "self", ...] }
func (th *TuningHandler) Start(c *gin.Context) {
	var req struct {
		Domains []types.Domain `json:"domains"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := th.tuningService.Start(c.Request.Context(), req.Domains)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, state)
}

// GET /tuning/state
func (th *TuningHandler) State(c *gin.Context) {
	state, err := th.tuningService.State(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, state)
}

// POST /tuning/answer
// body: { "question_id": "...", "option_id": "..." }
func (th *TuningHandler) Answer(c *gin.Context) {
	var req struct {
		QuestionID string `json:"question_id"`
		OptionID   string `json:"option_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := th.tuningService.Answer(c.Request.Context(), req.QuestionID, req.OptionID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, state)
}

// POST /tuning/next
func (th *TuningHandler) Next(c *gin.Context) {
	state, err := th.tuningService.Next(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, state)
}

// POST /tuning/previous
func (th *TuningHandler) Previous(c *gin.Context) {
	state, err := th.tuningService.Previous(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, state)
}

// POST /tuning/complete
func (th *TuningHandler) Complete(c *gin.Context) {
	session, err := th.tuningService.Complete(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

// POST /tuning/reset
func (th *TuningHandler) Reset(c *gin.Context) {
	if err := th.tuningService.Reset(c.Request.Context()); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /tuning/history
func (th *TuningHandler) History(c *gin.Context) {
	sessions, err := th.tuningService.History(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}

// DELETE /tuning/history
func (th *TuningHandler) ClearHistory(c *gin.Context) {
	if err := th.tuningService.ClearHistory(c.Request.Context()); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
