package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"alumbrado/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseRangeFilter reads from/to/zone query params. ok=false means a 400 was
// already written.
func (h *Handler) parseRangeFilter(c *gin.Context) (service.RangeFilter, bool) {
	var (
		f   service.RangeFilter
		err error
	)
	f.Zone = strings.TrimSpace(c.Query("zone"))

	if qs := c.Query("from"); qs != "" {
		f.From, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return service.RangeFilter{}, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		f.To, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return service.RangeFilter{}, false
		}
		// If the user didn't include a time component, treat "to" as the end of that day.
		if isDateOnly(qs) {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return service.RangeFilter{}, false
	}
	return f, true
}

// @Summary      List failure events
// @Description  Filter by date range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD') and zone. Ordered by event date.
// @Tags         data
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range; date-only treated as end of day"  example(2025-08-31)
// @Param        zone  query   string  false  "Zone"  example(ZONA B1)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	f, ok := h.parseRangeFilter(c)
	if !ok {
		return
	}
	events, err := h.services.Catalog.Events(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load events", "events_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      List change events
// @Tags         data
// @Produce      json
// @Param        from  query   string  false  "Start of range"
// @Param        to    query   string  false  "End of range; date-only treated as end of day"
// @Param        zone  query   string  false  "Zone"
// @Success      200   {object}  map[string]interface{}  "count, changes"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/changes [get]
// @Security     BearerAuth
func (h *Handler) getChanges(c *gin.Context) {
	f, ok := h.parseRangeFilter(c)
	if !ok {
		return
	}
	changes, err := h.services.Catalog.Changes(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load changes", "changes_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(changes),
		"changes": changes,
	})
}

// @Summary      List inventory snapshot
// @Tags         data
// @Produce      json
// @Param        municipio  query  string  false  "Municipality"
// @Success      200  {object}  map[string]interface{}  "count, inventory"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/inventory [get]
// @Security     BearerAuth
func (h *Handler) getInventory(c *gin.Context) {
	items, err := h.services.Catalog.Inventory(c.Request.Context(), c.Query("municipio"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load inventory", "inventory_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(items),
		"inventory": items,
	})
}

// @Summary      List ingested file names
// @Tags         data
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "fileNames"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/files [get]
// @Security     BearerAuth
func (h *Handler) getFiles(c *gin.Context) {
	files, err := h.services.Catalog.Files(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load file list", "files_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileNames": files})
}

// @Summary      Delete every record imported from a file
// @Tags         data
// @Produce      json
// @Param        name  path  string  true  "Source file name"
// @Success      200  {object}  map[string]interface{}  "deleted"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/files/{name} [delete]
// @Security     BearerAuth
func (h *Handler) deleteFile(c *gin.Context) {
	name := c.Param("name")
	deleted, err := h.services.Catalog.DeleteFile(c.Request.Context(), name)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete file records", "file_delete_failed", err, "file", name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "fileName": name})
}

// @Summary      Export combined JSON backup
// @Tags         data
// @Produce      json
// @Success      200  {object}  models.Backup
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/backup [get]
// @Security     BearerAuth
func (h *Handler) exportBackup(c *gin.Context) {
	backup, err := h.services.Catalog.ExportBackup(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to export backup", "backup_export_failed", err)
		return
	}
	c.JSON(http.StatusOK, backup)
}

// @Summary      Drop and recreate the whole store
// @Tags         data
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/reset [post]
// @Security     BearerAuth
func (h *Handler) resetStore(c *gin.Context) {
	if err := h.services.Catalog.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to reset store", "store_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
