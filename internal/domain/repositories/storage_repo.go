package repositories

import "mime/multipart"

const (
	CategoryUpload = "upload"
	CategoryAudio  = "audio"
	CategoryOutput = "output"
)

// ScratchStorage owns the request-lifetime directories.
type ScratchStorage interface {
	Allocate(category, originalName string) (string, error)
	Stage(fileHeader *multipart.FileHeader, category string) (string, error)
	Release(paths ...string)
	// InUse reports whether a path belongs to a request that has not finished.
	InUse(path string) bool
	UploadsDir() string
	OutputsDir() string
}
