package processor

import (
	"fmt"
	"strconv"
	"strings"

	"reel-processor/internal/domain/entities"
	"reel-processor/internal/pkg/config"
	consts "reel-processor/pkg/constants"
)

// Overlay placement. The primary line sits in the middle of the frame, the source line
// near the bottom, both horizontally centred.
const (
	primaryFontSize = 64
	primaryY        = "(h-text_h)/2"
	primaryBox      = "black@0.55"
	primaryBorder   = 18

	sourceFontSize = 36
	sourceY        = "h-220"
	sourceBox      = "black@0.45"
	sourceBorder   = 12

	centerX = "(w-text_w)/2"
)

// FFmpegBuilder turns a MediaJob into an ffmpeg argument slice. It does no I/O.
type FFmpegBuilder struct {
	Binary       string
	FontFile     string
	Preset       string
	CRF          int
	AudioBitrate string
}

func NewFFmpegBuilder(cfg config.MediaConfig) *FFmpegBuilder {
	return &FFmpegBuilder{
		Binary:       cfg.FFmpegPath,
		FontFile:     cfg.FontFile,
		Preset:       cfg.Preset,
		CRF:          cfg.CRF,
		AudioBitrate: cfg.AudioBitrate,
	}
}

// Build returns the complete argv, binary first. The job's audio is mapped as the only
// audio stream; the input's own audio is dropped.
func (b *FFmpegBuilder) Build(job *entities.MediaJob) []string {
	args := make([]string, 0, 40)

	args = append(args, b.Binary, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	args = append(args, "-i", job.InputPath, "-i", job.AudioPath)

	args = append(args, "-filter_complex", "[0:v]"+b.VideoFilter(job.PrimaryText, job.SourceText)+"[v]")
	args = append(args, "-map", "[v]", "-map", "1:a:0")

	args = append(args,
		"-c:v", "libx264",
		"-preset", b.Preset,
		"-crf", strconv.Itoa(b.CRF),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", b.AudioBitrate,
		"-shortest",
	)

	if job.MaxDuration > 0 {
		args = append(args, "-t", strconv.FormatFloat(job.MaxDuration, 'f', 2, 64))
	}

	args = append(args, "-movflags", "+faststart", job.OutputPath)
	return args
}

// VideoFilter is the comma-joined chain applied to the first input's video: fill the
// 1080x1920 frame (scale up, centre crop), then the overlays. Empty text is skipped.
func (b *FFmpegBuilder) VideoFilter(primary, source string) string {
	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", consts.ReelWidth, consts.ReelHeight),
		fmt.Sprintf("crop=%d:%d", consts.ReelWidth, consts.ReelHeight),
		"setsar=1",
	}
	if primary != "" {
		filters = append(filters, b.drawText(primary, primaryFontSize, primaryY, primaryBox, primaryBorder))
	}
	if source != "" {
		filters = append(filters, b.drawText(source, sourceFontSize, sourceY, sourceBox, sourceBorder))
	}
	return strings.Join(filters, ",")
}

func (b *FFmpegBuilder) drawText(text string, size int, y, box string, border int) string {
	opts := []string{}
	if b.FontFile != "" {
		opts = append(opts, "fontfile="+EscapeFilterValue(b.FontFile))
	}
	opts = append(opts,
		"text="+EscapeFilterValue(text),
		"expansion=none",
		"fontsize="+strconv.Itoa(size),
		"fontcolor=white",
		"x="+centerX,
		"y="+y,
		"box=1",
		"boxcolor="+box,
		"boxborderw="+strconv.Itoa(border),
	)
	return "drawtext=" + strings.Join(opts, ":")
}
