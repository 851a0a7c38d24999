package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/service"
)

type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// GetResult godoc
// @Summary Get a result with its answers
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param result_id path int true "Result ID"
// @Success 200 {object} dto.ResultDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{result_id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	resultID, ok := parseIDParam(ctx, "result_id")
	if !ok {
		return
	}
	resp, err := c.resultService.GetResult(resultID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListExamResults godoc
// @Summary List results for an exam
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/results [get]
func (c *ResultController) ListExamResults(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}
	resp, err := c.resultService.ListResultsForExam(examID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCandidateResult godoc
// @Summary Get the result of a specific candidate
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {object} dto.ResultDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidates/{candidate_id}/result [get]
func (c *ResultController) GetCandidateResult(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidate_id")
	if !ok {
		return
	}
	resp, err := c.resultService.GetCandidateResult(candidateID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// EvaluateResult godoc
// @Summary Award points to open-ended answers and recompute the score
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param result_id path int true "Result ID"
// @Param body body dto.EvaluateRequest true "Evaluations and optional feedback"
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} dto.ErrorResponse "No evaluations provided"
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{result_id}/evaluate [put]
func (c *ResultController) EvaluateResult(ctx *gin.Context) {
	resultID, ok := parseIDParam(ctx, "result_id")
	if !ok {
		return
	}
	var req dto.EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := c.resultService.EvaluateOpenEnded(resultID, currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.EvaluateResponse{Message: "Result evaluated successfully", Result: *result})
}

// ExportResult godoc
// @Summary Export a result document
// @Description Ownership is verified; document generation is delegated to an external collaborator and not implemented here.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param result_id path int true "Result ID"
// @Success 501 {object} dto.ExportResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{result_id}/export [get]
func (c *ResultController) ExportResult(ctx *gin.Context) {
	resultID, ok := parseIDParam(ctx, "result_id")
	if !ok {
		return
	}
	result, err := c.resultService.ExportResult(resultID, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNotImplemented, dto.ExportResponse{
		Message: "Export functionality not implemented yet",
		Result:  *result,
	})
}
