package config

const (
	// Video encoding, fixed for every run
	VideoFPS    = 24
	VideoCodec  = "libx264"
	AudioCodec  = "aac"
	VideoPreset = "slow"
	PixelFormat = "yuv420p"

	// Audio layout shared by every segment
	AudioSampleRate = 44100
	AudioChannels   = 2
)
