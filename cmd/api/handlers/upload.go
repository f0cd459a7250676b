package handlers

import (
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

// SaveUpload spools one multipart file field to a temp file and returns its
// path and declared content type. The caller removes the file when done.
func SaveUpload(c *app.RequestContext, field string) (string, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", "", errno.InvalidArgumentErr.WithMessage(field + " file is required")
	}
	dir, err := os.MkdirTemp("", "upload-*")
	if err != nil {
		return "", "", err
	}
	path := filepath.Join(dir, filepath.Base(header.Filename))
	if err := c.SaveUploadedFile(header, path); err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	return path, header.Header.Get("Content-Type"), nil
}

// SaveOptionalUpload is SaveUpload for fields the client may omit; an absent
// field returns empty values and no error.
func SaveOptionalUpload(c *app.RequestContext, field string) (string, string, error) {
	if _, err := c.FormFile(field); err != nil {
		return "", "", nil
	}
	return SaveUpload(c, field)
}

// CleanupUpload drops the spooled file's temp dir.
func CleanupUpload(path string) {
	if path != "" {
		os.RemoveAll(filepath.Dir(path))
	}
}
