package handlers

import (
	"io"
	"net/http"

	ai "grillbook/services/intelligence"
	"grillbook/services/knowledge"
	"grillbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler turns uploaded documents into training text: extract,
// summarize, append. Nothing is written to the training file unless the
// whole pipeline succeeds.
type UploadHandler struct {
	Knowledge   *knowledge.Store
	Completions ai.CompletionService
}

func NewUploadHandler(store *knowledge.Store, completions ai.CompletionService) *UploadHandler {
	return &UploadHandler{Knowledge: store, Completions: completions}
}

// UploadFileHandler handles POST /upload.
func (h *UploadHandler) UploadFileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "file not provided"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to open file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to read file"})
		return
	}

	text, err := knowledge.ExtractText(fileHeader.Filename, data)
	if err != nil {
		logger.Error("text extraction failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to extract text from file"})
		return
	}

	summary, err := h.Completions.Summarize(c.Request.Context(), text)
	if err != nil {
		logger.Error("summarization failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to summarize file"})
		return
	}

	if err := h.Knowledge.AppendSummary(summary); err != nil {
		logger.Error("training data write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to save training data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "File uploaded and added to training data"})
}
