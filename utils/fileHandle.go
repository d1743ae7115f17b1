package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/successfulca300-tech/ca-successfull-sub000/config"

	"github.com/google/uuid"
)

// SaveUploadedFile writes an uploaded file into the local blob store
// and returns the blob reference plus its public URL. A failure here
// must abort the caller before any database mutation.
func SaveUploadedFile(file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	destDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", "", err
	}

	// Blob refs are random so re-uploads never collide
	ext := filepath.Ext(file.Filename)
	blobRef := uuid.NewString() + ext
	filePath := filepath.Join(destDir, blobRef)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", "", err
	}

	return blobRef, GetFileURL(blobRef), nil
}

// DeleteBlob removes a stored blob. Missing files are not an error.
func DeleteBlob(blobRef string) error {
	if blobRef == "" {
		return nil
	}
	err := os.Remove(filepath.Join(config.AppConfig.UploadDir, blobRef))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetFileURL returns the public URL for a blob reference.
func GetFileURL(blobRef string) string {
	if blobRef == "" {
		return ""
	}
	return config.AppConfig.PublicURL + "/" + blobRef
}
