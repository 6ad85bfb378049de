package file

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"reel-processor/pkg/helper"
)

var (
	videoExtensions = []string{".mp4", ".m4v", ".mov", ".webm", ".mkv", ".avi", ".mpeg", ".mpg"}
	audioExtensions = []string{".mp3", ".m4a", ".aac", ".wav", ".ogg", ".opus", ".flac"}

	acceptedVideoTypes = []string{
		"video/mp4",
		"video/quicktime",
		"video/webm",
		"video/x-matroska",
		"video/x-msvideo",
		"video/mpeg",
	}
)

func IsVideoFile(filePath string) bool {
	return lo.Contains(videoExtensions, strings.ToLower(filepath.Ext(filePath)))
}

func IsAudioFile(filePath string) bool {
	return lo.Contains(audioExtensions, strings.ToLower(filepath.Ext(filePath)))
}

// IsAcceptedVideo checks the declared content type. Clients that send no type or a
// generic octet-stream are judged by the file extension instead.
func IsAcceptedVideo(contentType, filename string) bool {
	if isGeneric(contentType) && IsVideoFile(filename) {
		return true
	}
	return lo.Contains(acceptedVideoTypes, declaredOrGuessed(contentType, filename))
}

func IsAcceptedAudio(contentType, filename string) bool {
	mt := declaredOrGuessed(contentType, filename)
	return strings.HasPrefix(mt, "audio/")
}

func declaredOrGuessed(contentType, filename string) string {
	if isGeneric(contentType) {
		return helper.GetMimeTypeFromExtension(filename)
	}
	return helper.MediaType(contentType)
}

func isGeneric(contentType string) bool {
	mt := helper.MediaType(contentType)
	return mt == "" || mt == "application/octet-stream"
}
