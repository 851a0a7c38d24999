package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/service"
	"github.com/rs/zerolog/log"
)

// SessionController serves the public exam-taking flow. No authentication;
// the unique link is the only credential.
type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// AccessExam godoc
// @Summary Open an exam through a candidate access link
// @Description Returns candidate info, a restricted exam view and the questions with correct-answer flags stripped. Stamps the start time on first access.
// @Tags Session
// @Produce json
// @Param unique_link path string true "Candidate access token"
// @Success 200 {object} dto.AccessExamResponse
// @Failure 400 {object} dto.ErrorResponse "Test already completed"
// @Failure 404 {object} dto.ErrorResponse "Invalid access link"
// @Router /exams/access/{unique_link} [get]
func (c *SessionController) AccessExam(ctx *gin.Context) {
	resp, err := c.sessionService.AccessExam(ctx.Param("unique_link"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitExam godoc
// @Summary Submit answers for an exam, exactly once per candidate
// @Tags Session
// @Accept json
// @Produce json
// @Param unique_link path string true "Candidate access token"
// @Param body body dto.SubmitExamRequest true "Submitted answers"
// @Success 200 {object} dto.SubmitExamResponse
// @Failure 400 {object} dto.ErrorResponse "No answers or already completed"
// @Failure 404 {object} dto.ErrorResponse "Invalid access link"
// @Router /exams/submit/{unique_link} [post]
func (c *SessionController) SubmitExam(ctx *gin.Context) {
	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No answers provided"})
		return
	}
	link := ctx.Param("unique_link")
	log.Info().Str("link", link).Int("answerCount", len(req.Answers)).Msg("Exam submission received")

	resp, err := c.sessionService.SubmitExam(link, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
