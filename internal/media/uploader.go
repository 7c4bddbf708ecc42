// Package media validates, normalizes and ships uploaded images to the
// configured blob host, returning durable URLs.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMaxUploadSizeMB = 10
	MasterMaxSize          = 2048
	PreviewMaxSize         = 640
	JPEGQuality            = 82
	WebPQuality            = 70

	uploadTimeout = 30 * time.Second
)

// UploadInput carries one image through the ingestion pipeline.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Result holds the durable URLs returned by the blob host.
type Result struct {
	URL        string `json:"secure_url"`
	PreviewURL string `json:"preview_url"`
}

// Uploader turns raw image bytes into durable URLs.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (*Result, error)
}

// BlobUploader implements Uploader against an HTTP blob host.
type BlobUploader struct {
	httpClient         *http.Client
	uploadURL          string
	apiKey             string
	maxUploadSizeBytes int64
}

// NewBlobUploader returns a BlobUploader for the given host.
func NewBlobUploader(uploadURL, apiKey string) *BlobUploader {
	return &BlobUploader{
		httpClient:         &http.Client{Timeout: uploadTimeout},
		uploadURL:          uploadURL,
		apiKey:             apiKey,
		maxUploadSizeBytes: int64(DefaultMaxUploadSizeMB) * 1024 * 1024,
	}
}

func (u *BlobUploader) Upload(ctx context.Context, in UploadInput) (*Result, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > u.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", u.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	master := resizeToFit(decoded, MasterMaxSize)
	masterJPEG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("encode_error").Inc()
		return nil, models.NewUploadFailedError(err)
	}

	preview := resizeToFit(decoded, PreviewMaxSize)
	previewWebP, err := encodeWebP(preview, WebPQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("encode_error").Inc()
		return nil, models.NewUploadFailedError(err)
	}

	result, err := u.send(ctx, masterJPEG, previewWebP)
	if err != nil {
		observability.ImageUploads.WithLabelValues("upload_error").Inc()
		return nil, models.NewUploadFailedError(err)
	}

	observability.ImageUploads.WithLabelValues("ok").Inc()
	return result, nil
}

// send posts the master and preview variants as one multipart request and
// expects the blob host to answer with the durable URLs.
func (u *BlobUploader) send(ctx context.Context, masterJPEG, previewWebP []byte) (*Result, error) {
	objectName := uuid.NewString()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	master, err := w.CreateFormFile("file", objectName+".jpg")
	if err != nil {
		return nil, err
	}
	if _, err := master.Write(masterJPEG); err != nil {
		return nil, err
	}

	preview, err := w.CreateFormFile("preview", objectName+".webp")
	if err != nil {
		return nil, err
	}
	if _, err := preview.Write(previewWebP); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("blob host returned %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("malformed blob host response: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("blob host returned no URL")
	}
	return &result, nil
}

func isAllowedImageMIME(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

// resizeToFit downscales the image so neither dimension exceeds maxSize.
// Images already inside the bound are returned untouched.
func resizeToFit(src image.Image, maxSize int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return src
	}

	scale := float64(maxSize) / float64(w)
	if h > w {
		scale = float64(maxSize) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality float32) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
