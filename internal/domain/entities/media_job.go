package entities

import "github.com/samber/lo"

type JobState string

const (
	JobReceived    JobState = "received"
	JobValidated   JobState = "validated"
	JobInputStaged JobState = "input_staged"
	JobProcessing  JobState = "processing"
	JobCompleted   JobState = "completed"
	JobFailed      JobState = "failed"
)

// MediaJob is one ffmpeg invocation: every path in it belongs to a single request.
type MediaJob struct {
	ID          string
	InputPath   string
	AudioPath   string
	OutputPath  string
	PrimaryText string
	SourceText  string
	MaxDuration float64 // seconds, 0 = no -t flag
}

// PathSet is every scratch path allocated for one request.
type PathSet struct {
	paths []string
}

func (p *PathSet) Add(path string) {
	if path == "" {
		return
	}
	p.paths = append(p.paths, path)
}

func (p *PathSet) Paths() []string {
	return lo.Uniq(p.paths)
}

func (p *PathSet) Len() int {
	return len(p.paths)
}
