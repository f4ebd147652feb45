package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/services/media-service/internal/processor"
	"github.com/farhanms/playfield/services/media-service/internal/storage"
)

type MediaHandler struct {
	storage        *storage.FileStorage
	processor      processor.ImageProcessor
	baseURL        string
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewMediaHandler(
	fileStorage *storage.FileStorage,
	imageProcessor processor.ImageProcessor,
	baseURL string,
	maxUploadBytes int64,
	logger *logger.Logger,
) *MediaHandler {
	return &MediaHandler{
		storage:        fileStorage,
		processor:      imageProcessor,
		baseURL:        baseURL,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload stores a multipart image, generates its thumbnail, and returns
// the public URLs for both renditions.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	filename, err := h.storage.SaveOriginal(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.processor.GenerateThumbnail(h.storage.OriginalPath(filename), h.storage.ThumbnailPath(filename)); err != nil {
		// reject uploads that do not decode as images
		if delErr := h.storage.Delete(filename); delErr != nil {
			h.logger.Warn(fmt.Sprintf("Failed to clean up rejected upload %s: %v", filename, delErr))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
		return
	}

	h.logger.Info("Image uploaded", "filename", filename, "size", fileHeader.Size)

	c.JSON(http.StatusCreated, gin.H{
		"filename":      filename,
		"url":           fmt.Sprintf("%s/original/%s", h.baseURL, filename),
		"thumbnail_url": fmt.Sprintf("%s/thumbnail/%s", h.baseURL, filename),
	})
}

// Delete removes a stored image and its thumbnail by filename.
func (h *MediaHandler) Delete(c *gin.Context) {
	filename := c.PostForm("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	if err := h.storage.Delete(filename); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		h.logger.Error(fmt.Sprintf("Failed to delete %s: %v", filename, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	h.logger.Info("Image deleted", "filename", filename)

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// NewRouter exposes upload, delete, and static serving of the stored
// renditions.
func NewRouter(h *MediaHandler, storageRoot string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/upload", h.Upload)
	router.POST("/delete", h.Delete)
	router.Static("/original", storageRoot+"/original")
	router.Static("/thumbnail", storageRoot+"/thumbnail")

	return router
}
