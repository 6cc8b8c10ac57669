package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"alumbrado/internal/models"
)

const (
	// Exports are small (tens of thousands of rows); 32 MB is generous.
	maxUploadBytes = 32 << 20

	errMissingFile  = "multipart field 'file' is required"
	errUnreadable   = "could not read uploaded file"
	errImportFailed = "import failed: "
	statusOK        = "ok"
)

// readUpload pulls the multipart "file" field into memory, bounded by
// maxUploadBytes. ok=false means a response was already written.
func (h *Handler) readUpload(c *gin.Context) (name string, data []byte, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFile})
		return "", nil, false
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, errUnreadable, "upload_open_failed", err, "file", fh.Filename)
		return "", nil, false
	}
	defer func() { _ = f.Close() }()

	data, err = io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		// Unreadable file is fatal for the upload: no partial writes happen.
		h.logAndJSONError(c, http.StatusBadRequest, errUnreadable, "upload_read_failed", err, "file", fh.Filename)
		return "", nil, false
	}
	return fh.Filename, data, true
}

type importFunc func(ctx context.Context, fileName string, data []byte) (models.IngestReport, error)

func (h *Handler) runImport(c *gin.Context, do importFunc) {
	name, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	report, err := do(c.Request.Context(), name, data)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("import_failed", "err", err, "file", name)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errImportFailed + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Import failure-events CSV
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV export"
// @Success      200   {object}  models.IngestReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/imports/failures [post]
// @Security     BearerAuth
func (h *Handler) importFailures(c *gin.Context) {
	h.runImport(c, h.services.Ingest.ImportLuminaireEvents)
}

// @Summary      Import change-events CSV
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV export"
// @Success      200   {object}  models.IngestReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/imports/changes [post]
// @Security     BearerAuth
func (h *Handler) importChanges(c *gin.Context) {
	h.runImport(c, h.services.Ingest.ImportChangeEvents)
}

// @Summary      Import inventory CSV (snapshot; overwrites by streetlight id)
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV export"
// @Success      200   {object}  models.IngestReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/imports/inventory [post]
// @Security     BearerAuth
func (h *Handler) importInventory(c *gin.Context) {
	h.runImport(c, h.services.Ingest.ImportInventory)
}

// @Summary      Restore combined JSON backup
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Backup JSON"
// @Success      200   {object}  models.IngestReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/imports/backup [post]
// @Security     BearerAuth
func (h *Handler) importBackup(c *gin.Context) {
	h.runImport(c, func(ctx context.Context, _ string, data []byte) (models.IngestReport, error) {
		return h.services.Ingest.ImportBackup(ctx, data)
	})
}
