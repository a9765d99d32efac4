package handlers

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// BatchHandler handles statement uploads and batch rollback.
type BatchHandler struct {
	batchService   services.BatchServicer
	auditService   services.AuditServicer
	maxUploadBytes int64
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService services.BatchServicer, auditService services.AuditServicer, maxUploadBytes int64) *BatchHandler {
	return &BatchHandler{batchService: batchService, auditService: auditService, maxUploadBytes: maxUploadBytes}
}

// BatchEnvelope wraps a single import batch.
type BatchEnvelope struct {
	Batch models.ImportBatch `json:"batch"`
}

// BatchesEnvelope wraps a batch list.
type BatchesEnvelope struct {
	Batches []models.ImportBatch `json:"batches"`
}

// DeleteBatchResponse reports a batch rollback.
type DeleteBatchResponse struct {
	Message             string `json:"message"`
	TransactionsDeleted int64  `json:"transactions_deleted"`
}

// ImportBatch handles a statement upload
// @Summary     Import statement
// @Description Upload a date,description,amount CSV. Each file can only be imported once.
// @Tags        batches
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Statement CSV"
// @Success     201 {object} BatchEnvelope "Batch imported"
// @Failure     400 {object} ErrorResponse "Invalid file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "File already imported"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /batches [post]
func (h *BatchHandler) ImportBatch(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidFile, "multipart field \"file\" is required"))
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidFile, "The uploaded file is too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidFile, err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidFile, err))
		return
	}

	batch, err := h.batchService.ImportBatch(c.Request.Context(), filepath.Base(header.Filename), content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(getSubject(c), "IMPORT_BATCH", "import_batch", batch.ID, c.ClientIP(),
		map[string]interface{}{"filename": batch.Filename, "rows": batch.RowsInserted})

	c.JSON(http.StatusCreated, gin.H{"batch": batch})
}

// ListBatches handles the retrieval of import batches
// @Summary     List batches
// @Description List import batches, newest first, with their current transaction counts
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BatchesEnvelope "Batches"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /batches [get]
func (h *BatchHandler) ListBatches(c *gin.Context) {
	batches, err := h.batchService.ListBatches()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// DeleteBatch handles rolling back an import
// @Summary     Delete batch
// @Description Delete an import batch and every transaction it created
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Batch ID"
// @Success     200 {object} DeleteBatchResponse "Batch deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /batches/{id} [delete]
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.batchService.DeleteBatch(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(getSubject(c), "DELETE_BATCH", "import_batch", id, c.ClientIP(),
		map[string]interface{}{"transactions_deleted": deleted})

	c.JSON(http.StatusOK, gin.H{"message": "Batch deleted successfully", "transactions_deleted": deleted})
}
