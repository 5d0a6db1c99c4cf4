package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"pawconnect/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

// ImageUploader forwards a binary to the external image store and returns a
// durable, publicly fetchable URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg *config.Config) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.UploadFolder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         u.folder,
		Transformation: "c_limit,w_800,h_800,q_auto",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

type UploadHandler struct {
	uploader       ImageUploader
	placeholderURL string
}

func NewUploadHandler(uploader ImageUploader, cfg *config.Config) *UploadHandler {
	return &UploadHandler{uploader: uploader, placeholderURL: cfg.PlaceholderURL}
}

// UploadImage relays a multipart image to the external store. When the store
// fails, the caller still gets a usable placeholder URL so listing creation
// can proceed in a degraded mode instead of failing outright.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := h.uploader.Upload(ctx, file)
	if err != nil {
		log.Printf("[UploadImage] image store upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":  "Image upload degraded (store unavailable)",
			"imageUrl": h.placeholderURL,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"imageUrl": imageURL,
	})
}
