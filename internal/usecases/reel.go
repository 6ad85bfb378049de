package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/dto"
	"reel-processor/internal/domain/entities"
	"reel-processor/internal/domain/mapper"
	"reel-processor/internal/domain/repositories"
	"reel-processor/internal/infrastructure/processor"
	"reel-processor/internal/pkg/config"
	"reel-processor/pkg/errors"
	fl "reel-processor/pkg/file"
)

type ReelService interface {
	CreateReel(ctx context.Context, req *dto.CreateReelRequestDTO, video, audio *multipart.FileHeader) (*ReelResult, error)
}

// ReelResult is a finished reel. Closing Body removes every scratch file of the request,
// the output included; the caller must close it exactly once it is done reading.
type ReelResult struct {
	JobID string
	Size  int64
	Body  io.ReadCloser
}

type reelService struct {
	storage repositories.ScratchStorage
	builder repositories.CommandBuilder
	jobs    repositories.JobQueue
	prober  repositories.Prober
	cfg     config.MediaConfig
	log     logrus.FieldLogger
}

// NewReelService wires the request pipeline. prober may be nil, in which case staged
// uploads are not inspected before encoding.
func NewReelService(
	storage repositories.ScratchStorage,
	builder repositories.CommandBuilder,
	jobs repositories.JobQueue,
	prober repositories.Prober,
	cfg config.MediaConfig,
	log logrus.FieldLogger,
) ReelService {
	return &reelService{
		storage: storage,
		builder: builder,
		jobs:    jobs,
		prober:  prober,
		cfg:     cfg,
		log:     log,
	}
}

func (s *reelService) CreateReel(ctx context.Context, req *dto.CreateReelRequestDTO, video, audio *multipart.FileHeader) (res *ReelResult, err error) {
	job := mapper.ToMediaJob(uuid.NewString(), req, s.cfg.MaxDuration)
	log := s.log.WithField("job_id", job.ID)
	paths := &entities.PathSet{}
	state := entities.JobReceived

	defer func() {
		if err == nil {
			return
		}
		s.transition(log.WithError(err), state, entities.JobFailed)
		s.storage.Release(paths.Paths()...)
	}()

	// Received -> Validated
	audioPath, err := s.validate(req, video, audio)
	if err != nil {
		return nil, err
	}
	state = s.transition(log, state, entities.JobValidated)

	// Validated -> InputStaged
	if job.InputPath, err = s.storage.Stage(video, repositories.CategoryUpload); err != nil {
		return nil, errors.ErrStaging(err)
	}
	paths.Add(job.InputPath)

	job.AudioPath = audioPath
	if audio != nil {
		if job.AudioPath, err = s.storage.Stage(audio, repositories.CategoryAudio); err != nil {
			return nil, errors.ErrStaging(err)
		}
		paths.Add(job.AudioPath)
	}

	if job.OutputPath, err = s.storage.Allocate(repositories.CategoryOutput, ".mp4"); err != nil {
		return nil, errors.ErrStaging(err)
	}
	paths.Add(job.OutputPath)
	state = s.transition(log, state, entities.JobInputStaged)

	if err := s.probe(ctx, log, job.ID, job.InputPath); err != nil {
		return nil, err
	}

	// InputStaged -> Processing
	state = s.transition(log, state, entities.JobProcessing)
	if _, err := s.jobs.Submit(ctx, job.ID, s.builder.Build(job)); err != nil {
		return nil, classify(err)
	}

	// Processing -> Completed
	out, err := os.Open(job.OutputPath)
	if err != nil {
		return nil, errors.ErrProcessing(fmt.Errorf("output missing: %w", err))
	}
	info, err := out.Stat()
	if err == nil && info.Size() == 0 {
		err = stderrors.New("output is empty")
	}
	if err != nil {
		out.Close()
		return nil, errors.ErrProcessing(err)
	}
	state = s.transition(log, state, entities.JobCompleted)

	return &ReelResult{
		JobID: job.ID,
		Size:  info.Size(),
		Body:  &releasingFile{File: out, release: func() { s.storage.Release(paths.Paths()...) }},
	}, nil
}

func (s *reelService) transition(log logrus.FieldLogger, from, to entities.JobState) entities.JobState {
	log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("job state changed")
	return to
}

// validate checks everything that can be rejected before touching the disk and resolves
// the audio track to use when none was uploaded.
func (s *reelService) validate(req *dto.CreateReelRequestDTO, video, audio *multipart.FileHeader) (string, error) {
	for _, f := range []struct{ name, value string }{
		{"primary_text", req.PrimaryText},
		{"source_text", req.SourceText},
		{"audio_id", req.AudioID},
	} {
		if err := checkText(f.name, f.value); err != nil {
			return "", err
		}
	}

	if video == nil {
		return "", errors.ErrValidation("video file is required")
	}
	if video.Size == 0 {
		return "", errors.ErrValidation("video file is empty")
	}
	if !fl.IsAcceptedVideo(video.Header.Get("Content-Type"), video.Filename) {
		return "", errors.ErrValidation("video must be mp4, mov, webm, mkv, avi or mpeg")
	}

	if audio != nil {
		if audio.Size == 0 {
			return "", errors.ErrValidation("audio file is empty")
		}
		if !fl.IsAcceptedAudio(audio.Header.Get("Content-Type"), audio.Filename) {
			return "", errors.ErrValidation("audio must be an audio file")
		}
		return "", nil
	}

	if req.AudioID != "" {
		path, ok := s.libraryTrack(req.AudioID)
		if !ok {
			return "", errors.ErrValidation("unknown audio_id")
		}
		return path, nil
	}

	if !isRegularFile(s.cfg.DefaultAudio) {
		return "", errors.ErrValidation("no audio source available")
	}
	return s.cfg.DefaultAudio, nil
}

// checkText rejects values that can never reach ffmpeg as an argument.
func checkText(field, value string) error {
	if !utf8.ValidString(value) {
		return errors.ErrValidation(field + " is not valid UTF-8")
	}
	if strings.ContainsRune(value, 0) {
		return errors.ErrValidation(field + " contains a forbidden character")
	}
	return nil
}

// libraryTrack maps an audio_id to a file in the audio library. IDs without an extension
// are tried as .mp3.
func (s *reelService) libraryTrack(id string) (string, bool) {
	if s.cfg.AudioLibraryDir == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}
	candidates := []string{id}
	if filepath.Ext(id) == "" {
		candidates = append(candidates, id+".mp3")
	}
	for _, c := range candidates {
		p := filepath.Join(s.cfg.AudioLibraryDir, c)
		if isRegularFile(p) && fl.IsAudioFile(p) {
			return p, true
		}
	}
	return "", false
}

// probe rejects uploads ffprobe can read but that carry no picture. It runs on a worker
// slot like the encode. Probe failures are only logged; ffmpeg reports unreadable input
// on its own.
func (s *reelService) probe(ctx context.Context, log logrus.FieldLogger, id, path string) error {
	if s.prober == nil {
		return nil
	}
	var res *entities.ProbeResult
	err := s.jobs.Do(ctx, id, func(ctx context.Context) error {
		var err error
		res, err = s.prober.Probe(ctx, path)
		return err
	})
	if err != nil {
		log.WithError(err).Warn("probe failed, continuing")
		return nil
	}
	log.WithFields(logrus.Fields{
		"duration": res.Duration,
		"width":    res.Width,
		"height":   res.Height,
		"audio":    res.HasAudio,
	}).Debug("input probed")
	if !res.HasVideo {
		return errors.ErrValidation("video file has no video stream")
	}
	return nil
}

func classify(err error) error {
	switch {
	case stderrors.Is(err, processor.ErrToolTimeout):
		return errors.ErrTimeout(err)
	case stderrors.Is(err, processor.ErrToolFailure):
		return errors.ErrProcessing(err)
	default:
		return errors.ErrInternal(err)
	}
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// releasingFile removes the request's scratch files once the response body is closed.
type releasingFile struct {
	*os.File
	release func()
	once    sync.Once
}

func (f *releasingFile) Close() error {
	err := f.File.Close()
	f.once.Do(f.release)
	return err
}
