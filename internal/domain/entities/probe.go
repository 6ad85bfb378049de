package entities

type ProbeResult struct {
	Duration float64 // seconds, 0 when unknown
	HasVideo bool
	HasAudio bool
	Width    int
	Height   int
}
