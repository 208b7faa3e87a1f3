package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/prompt-rewards-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/prompt-rewards-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/service"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, user domain.User, input domain.SubmissionInput) (domain.Submission, error)
	ApproveSubmission(ctx context.Context, staff domain.User, input domain.ReviewInput) (domain.Submission, error)
	RejectSubmission(ctx context.Context, staff domain.User, input domain.ReviewInput) (domain.Submission, error)
	GetSubmission(ctx context.Context, id uint) (domain.Submission, error)
	ListSubmissions(ctx context.Context, status domain.SubmissionStatus, page int) ([]domain.Submission, error)
	GetOwnedAssets(ctx context.Context, owner domain.Owner) ([]domain.OwnedAsset, error)
}

type SubmissionHandler struct {
	svc  SubmissionService
	uSvc UserService
}

func NewSubmissionHandler(svc SubmissionService, uSvc UserService) *SubmissionHandler {
	return &SubmissionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateSubmission godoc
// @Summary      Submit to a prompt
// @Description  Stores a pending submission with the rewards it claims. No balance changes until staff approve it.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateSubmissionRequest  true  "Submission"
// @Success      201    {object}  response.Submission
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /submissions [post]
// @Security BearerAuth
func (h *SubmissionHandler) HandleCreateSubmission(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.CreateSubmission(ctx, user, input.ToInput())
	if err != nil {
		renderWorkflowErr(ctx, "HandleCreateSubmission -> h.svc.CreateSubmission", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSubmission(submission))
}

// HandleGetSubmission godoc
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Param        submissionID  path      int  true  "Submission ID"
// @Success      200           {object}  response.Submission
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Router       /submissions/{submissionID} [get]
// @Security BearerAuth
func (h *SubmissionHandler) HandleGetSubmission(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissionID, err := parseID(ctx, "submissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.GetSubmission(ctx, submissionID)
	if err != nil {
		renderWorkflowErr(ctx, "HandleGetSubmission -> h.svc.GetSubmission", submissionID, err)
		return
	}

	if submission.UserID != user.ID && !user.IsStaff {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v does not own submission %v", user.ID, submissionID)))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSubmission(submission))
}

// HandleListSubmissions godoc
// @Summary      Review queue
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Pending, Approved or Rejected"
// @Param        page    query     int     false  "Page, 20 per page"
// @Success      200     {array}   response.Submission
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Router       /admin/submissions [get]
// @Security BearerAuth
func (h *SubmissionHandler) HandleListSubmissions(ctx *gin.Context) {
	if _, respErr := h.staffFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var query request.ListSubmissionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submissions, err := h.svc.ListSubmissions(ctx, domain.SubmissionStatus(query.Status), query.Page)
	if err != nil {
		err = fmt.Errorf("HandleListSubmissions -> h.svc.ListSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSubmissions(submissions))
}

// HandleApproveSubmission godoc
// @Summary      Approve a submission
// @Description  Grants the edited rewards to the submitter and the attached characters in one transaction.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        submissionID  path      int                               true  "Submission ID"
// @Param        input         body      request.ApproveSubmissionRequest  true  "Final rewards"
// @Success      200           {object}  response.Submission
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      422           {object}  response.Err
// @Router       /admin/submissions/{submissionID}/approve [post]
// @Security BearerAuth
func (h *SubmissionHandler) HandleApproveSubmission(ctx *gin.Context) {
	staff, respErr := h.staffFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissionID, err := parseID(ctx, "submissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.ApproveSubmissionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.ApproveSubmission(ctx, staff, input.ToInput(submissionID))
	if err != nil {
		renderWorkflowErr(ctx, "HandleApproveSubmission -> h.svc.ApproveSubmission", submissionID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSubmission(submission))
}

// HandleRejectSubmission godoc
// @Summary      Reject a submission
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        submissionID  path      int                              true  "Submission ID"
// @Param        input         body      request.RejectSubmissionRequest  true  "Staff comments"
// @Success      200           {object}  response.Submission
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Router       /admin/submissions/{submissionID}/reject [post]
// @Security BearerAuth
func (h *SubmissionHandler) HandleRejectSubmission(ctx *gin.Context) {
	staff, respErr := h.staffFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissionID, err := parseID(ctx, "submissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.RejectSubmissionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.RejectSubmission(ctx, staff, domain.ReviewInput{
		SubmissionID:  submissionID,
		StaffComments: input.StaffComments,
	})
	if err != nil {
		renderWorkflowErr(ctx, "HandleRejectSubmission -> h.svc.RejectSubmission", submissionID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSubmission(submission))
}

// HandleGetOwnedAssets godoc
// @Summary      Current holdings of a user or character
// @Tags         assets
// @Produce      json
// @Param        ownerType  path      string  true  "user or character"
// @Param        ownerID    path      int     true  "Owner ID"
// @Success      200        {object}  response.Holdings
// @Failure      400        {object}  response.Err
// @Router       /owners/{ownerType}/{ownerID}/assets [get]
// @Security BearerAuth
func (h *SubmissionHandler) HandleGetOwnedAssets(ctx *gin.Context) {
	var owner domain.Owner
	switch strings.ToLower(ctx.Param("ownerType")) {
	case "user", "users":
		owner.Type = domain.OwnerUser
	case "character", "characters":
		owner.Type = domain.OwnerCharacter
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid owner type %q", ctx.Param("ownerType"))))
		return
	}

	ownerID, err := parseID(ctx, "ownerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	owner.ID = ownerID

	owned, err := h.svc.GetOwnedAssets(ctx, owner)
	if err != nil {
		err = fmt.Errorf("HandleGetOwnedAssets -> h.svc.GetOwnedAssets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewHoldings(owner, owned))
}

// staffFromContext re-checks the staff flag against the stored user, not just the token.
func (h *SubmissionHandler) staffFromContext(ctx *gin.Context) (domain.User, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, respErr
	}
	if !user.IsStaff {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("user %v is not staff", user.ID))
	}
	return user, nil
}

func renderWorkflowErr(ctx *gin.Context, call string, submissionID uint, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("submission", "ID", submissionID))
	case errors.Is(err, service.ErrValidation):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrNotPending):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrDistributionFailure):
		response.RenderErr(ctx, response.ErrUnprocessable(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", call, err)))
	}
}
