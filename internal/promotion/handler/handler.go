package handler

import (
	"context"
	"errors"
	"net/http"

	"promopilot/internal/apierrors"
	"promopilot/internal/observability"
	"promopilot/internal/promotion/processor"
	"promopilot/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

// PromotionProcessor is the slice of the promotion processor the HTTP layer needs.
type PromotionProcessor interface {
	StartRun(ctx context.Context, input processor.StartRunInput) (processor.StartRunOutput, error)
	CancelRun(ctx context.Context, projectID, linkID uuid.UUID) (store.PromotionRun, error)
	GetStatus(ctx context.Context, projectID, linkID uuid.UUID) (processor.RunStatus, error)
	GetRunStatus(ctx context.Context, runID uuid.UUID) (processor.RunStatus, error)
	GetReport(ctx context.Context, runID uuid.UUID) (processor.Report, error)
	HandlePublicationResult(ctx context.Context, publicationID uuid.UUID, result processor.PublicationResult) error
}

type Handler struct {
	processor PromotionProcessor
	logger    *observability.Logger
}

func New(p PromotionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: p,
		logger:    logger,
	}
}

// StartRunRequest represents the HTTP request for starting a promotion run
type StartRunRequest struct {
	InitiatedBy string `json:"initiated_by" binding:"omitempty,oneof=user operator api"`
}

// PublicationResultRequest is the callback body posted by the publisher fleet
type PublicationResultRequest struct {
	Status    string                    `json:"status" binding:"required,oneof=success partial failed cancelled"`
	ResultURL *string                   `json:"result_url,omitempty" binding:"omitempty,url"`
	Error     *string                   `json:"error,omitempty"`
	Article   *processor.ArticleContent `json:"article,omitempty"`
}

// HandleStartRun starts a promotion run for a project link
func (h *Handler) HandleStartRun(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, linkID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	// The body is optional, only bind when the caller sent one.
	var req StartRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid request body")
			return
		}
	}
	initiatedBy := req.InitiatedBy
	if initiatedBy == "" {
		initiatedBy = "user"
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "project_id", Value: projectID.String()},
		observability.Field{Key: "link_id", Value: linkID.String()},
	)

	out, err := h.processor.StartRun(ctx, processor.StartRunInput{
		ProjectID:   projectID,
		LinkID:      linkID,
		InitiatedBy: initiatedBy,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusCreated
	if out.Already {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"run":     out.Run,
		"already": out.Already,
	})
}

// HandleCancelRun cancels the active run covering a project link
func (h *Handler) HandleCancelRun(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, linkID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	run, err := h.processor.CancelRun(ctx, projectID, linkID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// HandleGetStatus reports live progress of the active run for a project link
func (h *Handler) HandleGetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, linkID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	status, err := h.processor.GetStatus(ctx, projectID, linkID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleGetRunStatus reports progress of a run by id, terminal runs included
func (h *Handler) HandleGetRunStatus(c *gin.Context) {
	ctx := c.Request.Context()

	runID, err := uuid.Parse(c.Param("runID"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid run id")
		return
	}

	status, err := h.processor.GetRunStatus(ctx, runID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleGetReport returns the final report of a run
func (h *Handler) HandleGetReport(c *gin.Context) {
	ctx := c.Request.Context()

	runID, err := uuid.Parse(c.Param("runID"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid run id")
		return
	}

	report, err := h.processor.GetReport(ctx, runID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// HandlePublicationResult receives the publisher fleet's outcome callback
func (h *Handler) HandlePublicationResult(c *gin.Context) {
	ctx := c.Request.Context()

	publicationID, err := uuid.Parse(c.Param("publicationID"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid publication id")
		return
	}

	var req PublicationResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid request body")
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "publication_id", Value: publicationID.String()},
	)

	err = h.processor.HandlePublicationResult(ctx, publicationID, processor.PublicationResult{
		Status:    req.Status,
		ResultURL: req.ResultURL,
		Error:     req.Error,
		Article:   req.Article,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

func (h *Handler) pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid project id")
		return uuid.Nil, uuid.Nil, false
	}
	linkID, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid link id")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, linkID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var fundsErr *store.InsufficientFundsError
	switch {
	case errors.Is(err, processor.ErrProjectNotFound):
		apierrors.NotFoundWithCode(c, apierrors.CodeProjectNotFound, "project not found")
	case errors.Is(err, processor.ErrLinkNotFound):
		apierrors.NotFoundWithCode(c, apierrors.CodeLinkNotFound, "project link not found")
	case errors.Is(err, processor.ErrRunNotFound):
		apierrors.NotFoundWithCode(c, apierrors.CodeRunNotFound, "promotion run not found")
	case errors.As(err, &fundsErr):
		apierrors.PaymentRequired(c, fundsErr.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
