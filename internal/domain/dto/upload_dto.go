package dto

// CreateReelRequestDTO holds the text fields of the multipart form. Files are read
// separately with FormFile.
type CreateReelRequestDTO struct {
	PrimaryText string `json:"primary_text" form:"primary_text" validate:"max=500"`
	SourceText  string `json:"source_text" form:"source_text" validate:"max=500"`
	AudioID     string `json:"audio_id" form:"audio_id" validate:"omitempty,max=128,excludesall=/\\"`
	MaxDuration int    `json:"max_duration" form:"max_duration" validate:"omitempty,min=1,max=600"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
