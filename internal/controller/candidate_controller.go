package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/service"
	"github.com/rs/zerolog/log"
)

type CandidateController struct {
	candidateService service.CandidateService
}

func NewCandidateController(candidateService service.CandidateService) *CandidateController {
	return &CandidateController{candidateService: candidateService}
}

// CreateCandidate godoc
// @Summary Register a candidate for an exam
// @Tags Candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CandidateCreateRequest true "Candidate data"
// @Success 201 {object} dto.CandidateMutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidates [post]
func (c *CandidateController) CreateCandidate(ctx *gin.Context) {
	var req dto.CandidateCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := c.candidateService.CreateCandidate(currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCandidates godoc
// @Summary List candidates across all of the caller's exams
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CandidateResponse
// @Router /candidates [get]
func (c *CandidateController) ListCandidates(ctx *gin.Context) {
	resp, err := c.candidateService.ListCandidates(currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCandidate godoc
// @Summary Get a candidate
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {object} dto.CandidateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidates/{candidate_id} [get]
func (c *CandidateController) GetCandidate(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidate_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.GetCandidate(candidateID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateCandidate godoc
// @Summary Update a candidate, optionally moving it to another owned exam
// @Tags Candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param candidate_id path int true "Candidate ID"
// @Param body body dto.CandidateUpdateRequest true "Fields to update"
// @Success 200 {object} dto.CandidateMutationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidates/{candidate_id} [put]
func (c *CandidateController) UpdateCandidate(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidate_id")
	if !ok {
		return
	}
	var req dto.CandidateUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := c.candidateService.UpdateCandidate(candidateID, currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteCandidate godoc
// @Summary Delete a candidate
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidates/{candidate_id} [delete]
func (c *CandidateController) DeleteCandidate(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidate_id")
	if !ok {
		return
	}
	if err := c.candidateService.DeleteCandidate(candidateID, currentUserID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Candidate deleted successfully"})
}

// ListExamCandidates godoc
// @Summary List candidates registered for an exam
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.CandidateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/candidates [get]
func (c *CandidateController) ListExamCandidates(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.ListCandidatesForExam(examID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SendInvitation godoc
// @Summary Send (or resend) the candidate's invitation with their access link
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.InvitationResponse "success:false on persistence failure"
// @Router /candidates/{candidate_id}/send-invitation [post]
func (c *CandidateController) SendInvitation(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidate_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.SendInvitation(candidateID, currentUserID(ctx))
	if err != nil {
		status := apperr.Status(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Uint("candidateID", candidateID).Msg("SendInvitation failed")
			ctx.JSON(status, dto.InvitationResponse{Success: false, Message: "Failed to send invitation"})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
