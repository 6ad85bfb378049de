package mapper

import (
	"reel-processor/internal/domain/dto"
	"reel-processor/internal/domain/entities"
)

// ToMediaJob copies the request text into a job. Paths are filled in by the service
// as they are staged.
func ToMediaJob(id string, req *dto.CreateReelRequestDTO, defaultMaxDuration int) *entities.MediaJob {
	maxDuration := defaultMaxDuration
	if req.MaxDuration > 0 {
		maxDuration = req.MaxDuration
	}
	return &entities.MediaJob{
		ID:          id,
		PrimaryText: req.PrimaryText,
		SourceText:  req.SourceText,
		MaxDuration: float64(maxDuration),
	}
}
