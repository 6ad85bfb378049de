package constants

const (
	StatusHealthy = "healthy"

	ServiceName    = "reel-processor"
	ServiceVersion = "2.1.0"
)

// Target frame for every reel.
const (
	ReelWidth  = 1080
	ReelHeight = 1920
)

const VideoContentType = "video/mp4"
