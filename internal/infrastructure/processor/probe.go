package processor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/tidwall/gjson"

	"reel-processor/internal/domain/entities"
)

// FFprobe reads container and stream info from a staged file.
type FFprobe struct {
	Binary  string
	Timeout time.Duration
}

func NewFFprobe(binary string, timeout time.Duration) *FFprobe {
	return &FFprobe{Binary: binary, Timeout: timeout}
}

func (p *FFprobe) Probe(ctx context.Context, path string) (*entities.ProbeResult, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: ffprobe", ErrToolTimeout)
		}
		return nil, fmt.Errorf("%w: ffprobe: %v", ErrToolFailure, err)
	}
	return ParseProbeJSON(out)
}

// ParseProbeJSON reads ffprobe's -print_format json output.
func ParseProbeJSON(data []byte) (*entities.ProbeResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("ffprobe output is not valid json")
	}
	doc := gjson.ParseBytes(data)

	res := &entities.ProbeResult{
		Duration: doc.Get("format.duration").Float(),
	}
	doc.Get("streams").ForEach(func(_, s gjson.Result) bool {
		switch s.Get("codec_type").String() {
		case "video":
			// attached cover art is reported as a video stream
			if s.Get("disposition.attached_pic").Int() == 1 {
				return true
			}
			if !res.HasVideo {
				res.HasVideo = true
				res.Width = int(s.Get("width").Int())
				res.Height = int(s.Get("height").Int())
			}
			if res.Duration == 0 {
				res.Duration = s.Get("duration").Float()
			}
		case "audio":
			res.HasAudio = true
		}
		return true
	})
	return res, nil
}
