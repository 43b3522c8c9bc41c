package encoder

import (
	"strconv"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const silenceSource = "anullsrc=channel_layout=stereo:sample_rate=44100"

// segmentArgs builds the ffmpeg arguments that turn one still image and its
// optional narration into a standalone clip of exactly seg.Duration seconds.
// Every clip shares codecs and stream layout so they can be joined losslessly.
func (e *implEncoder) segmentArgs(seg model.Segment, outputPath string) []string {
	// truncated, so -t never admits a frame past the last whole one
	dur := seg.Duration.Truncate(3).StringFixed(3)
	frames := model.FrameCount(seg.Duration, config.VideoFPS)

	video := ffmpeg.Input(seg.ImagePath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": config.VideoFPS,
	})
	video = fitFrame(video, seg.Resolution, e.fit).
		Filter("setsar", ffmpeg.Args{"1"})

	var audio *ffmpeg.Stream
	if seg.HasAudio() {
		// pad so rounding in the measured duration never shortens the clip
		audio = ffmpeg.Input(seg.AudioPath).Audio().Filter("apad", ffmpeg.Args{})
	} else {
		audio = ffmpeg.Input(silenceSource, ffmpeg.KwArgs{"f": "lavfi", "t": dur})
	}

	return ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, ffmpeg.KwArgs{
		"c:v":      config.VideoCodec,
		"c:a":      config.AudioCodec,
		"preset":   config.VideoPreset,
		"r":        config.VideoFPS,
		"pix_fmt":  config.PixelFormat,
		"ar":       config.AudioSampleRate,
		"ac":       config.AudioChannels,
		"frames:v": frames,
		"t":        dur,
	}).OverWriteOutput().GetArgs()
}

// fitFrame resizes to the target frame. Letterbox keeps the whole slide and
// pads, crop fills the frame and trims the overflow from the center.
func fitFrame(s *ffmpeg.Stream, res model.Resolution, fit string) *ffmpeg.Stream {
	// positional options go in separate Args, ffmpeg-go escapes ':' inside one
	w, h := strconv.Itoa(res.Width), strconv.Itoa(res.Height)

	if fit == config.FitCrop {
		return s.
			Filter("scale", ffmpeg.Args{w, h}, ffmpeg.KwArgs{"force_original_aspect_ratio": "increase"}).
			Filter("crop", ffmpeg.Args{w, h})
	}

	return s.
		Filter("scale", ffmpeg.Args{w, h}, ffmpeg.KwArgs{"force_original_aspect_ratio": "decrease"}).
		Filter("pad", ffmpeg.Args{w, h, "(ow-iw)/2", "(oh-ih)/2"})
}

// concatArgs joins clips listed in listName without re-encoding
func concatArgs(listName, outputName string) []string {
	return ffmpeg.Input(listName, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputName, ffmpeg.KwArgs{"c": "copy", "movflags": "+faststart"}).
		OverWriteOutput().
		GetArgs()
}
