package utils

import (
	"fmt"
	"lms/config"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// UploadResult is what the content store hands back for a stored file.
type UploadResult struct {
	URL       string `json:"url"`
	ContentID string `json:"content_id"`
	Kind      string `json:"kind"`
	SizeBytes int64  `json:"size_bytes"`
}

// StoreMaterialFile pushes an uploaded file to the external content store
// when MEDIA_API_URL is configured, falling back to local disk otherwise.
func StoreMaterialFile(file *multipart.FileHeader) (*UploadResult, error) {
	if config.AppConfig.MediaApiURL != "" {
		return uploadToMediaStore(file)
	}

	path, err := SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:       GetFileURL(path),
		ContentID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Kind:      KindFromFilename(file.Filename),
		SizeBytes: file.Size,
	}, nil
}

func uploadToMediaStore(file *multipart.FileHeader) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentID := uuid.NewString()

	client := resty.New().SetTimeout(30 * time.Second)
	result := new(UploadResult)

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.MediaApiKey).
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"content_id": contentID,
			"kind":       KindFromFilename(file.Filename),
		}).
		SetResult(result).
		Post(config.AppConfig.MediaApiURL + "/v1/contents")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("media store upload failed, code: %d", resp.StatusCode())
	}

	if result.ContentID == "" {
		result.ContentID = contentID
	}
	if result.SizeBytes == 0 {
		result.SizeBytes = file.Size
	}
	if result.Kind == "" {
		result.Kind = KindFromFilename(file.Filename)
	}

	return result, nil
}

// KindFromFilename buckets a file into a coarse resource kind by extension.
func KindFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".webm", ".mkv":
		return "video"
	case ".mp3", ".wav", ".ogg":
		return "audio"
	case ".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt":
		return "document"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image"
	default:
		return "file"
	}
}
