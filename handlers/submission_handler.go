package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"abstractportal-backend/models"
	"abstractportal-backend/sanity"
	"abstractportal-backend/storage"

	"github.com/gin-gonic/gin"
)

// fallbackFilename is used when the file part carries no filename.
const fallbackFilename = "abstract.pdf"

// SubmissionHandler handles HTTP requests for abstract submissions
type SubmissionHandler struct {
	store   sanity.Store
	archive storage.Archive // nil when archiving is disabled
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(store sanity.Store, archive storage.Archive) *SubmissionHandler {
	return &SubmissionHandler{
		store:   store,
		archive: archive,
	}
}

// SubmitAbstract handles POST /api/submit-abstract.
//
// The pipeline is a single pass: parse multipart, extract the file, stream
// it to the asset store, assemble the document, create it. Each stage wraps
// its error with a stage tag for the server log; the wire response is the
// uniform flat envelope either way.
func (h *SubmissionHandler) SubmitAbstract(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.fail(c, fmt.Errorf("parse multipart form: %w", err))
		return
	}

	fileHeader := firstFile(form.File[models.FieldAbstractFile])
	if fileHeader == nil {
		h.fail(c, fmt.Errorf("extract file: no file uploaded"))
		return
	}

	asset, err := h.uploadAbstract(c.Request.Context(), fileHeader)
	if err != nil {
		h.fail(c, fmt.Errorf("upload asset: %w", err))
		return
	}

	if h.archive != nil {
		h.archiveCopy(c.Request.Context(), fileHeader)
	}

	doc := models.BuildSubmissionDoc(flattenFields(form.Value), asset.ID)

	submission, err := h.store.CreateDocument(c.Request.Context(), doc)
	if err != nil {
		// The asset is already stored but nothing references it; record the
		// id so it can be reconciled later.
		log.Printf("orphaned asset after create failure: %s", asset.ID)
		h.fail(c, fmt.Errorf("create document: %w", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// uploadAbstract streams the file part to the asset store. The part is
// spooled to a temp file by the multipart parser, so Open hands back a
// stream rather than a buffered blob.
func (h *SubmissionHandler) uploadAbstract(ctx context.Context, fileHeader *multipart.FileHeader) (*sanity.Asset, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	filename := fileHeader.Filename
	if filename == "" {
		filename = fallbackFilename
	}

	return h.store.UploadAsset(ctx, "file", filename, fileHeader.Header.Get("Content-Type"), file)
}

// archiveCopy writes a retained copy of the uploaded file. Best effort:
// failures are logged and never fail the submission.
func (h *SubmissionHandler) archiveCopy(ctx context.Context, fileHeader *multipart.FileHeader) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("archive copy skipped, reopen failed: %v", err)
		return
	}
	defer file.Close()

	filename := fileHeader.Filename
	if filename == "" {
		filename = fallbackFilename
	}

	key := storage.NewArchiveKey(filename)
	if _, err := h.archive.Save(ctx, key, fileHeader.Header.Get("Content-Type"), file); err != nil {
		log.Printf("archive copy failed: %v", err)
	}
}

func (h *SubmissionHandler) fail(c *gin.Context, err error) {
	log.Printf("submission error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// firstValue collapses a possibly repeated field to its first element. The
// contract is one value per field; repeats come only from hand-rolled
// clients.
func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// firstFile collapses a possibly repeated file part to its first element.
func firstFile(files []*multipart.FileHeader) *multipart.FileHeader {
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// flattenFields normalizes every field to a plain string.
func flattenFields(values map[string][]string) map[string]string {
	fields := make(map[string]string, len(values))
	for key, value := range values {
		fields[key] = firstValue(value)
	}
	return fields
}
