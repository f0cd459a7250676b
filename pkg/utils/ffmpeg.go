package utils

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration reads the container duration of a video file in seconds.
func ProbeDuration(videoPath string) (float64, error) {
	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	raw := gjson.Get(out, "format.duration").String()
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Errorf("unexpected ffprobe duration %q", raw)
	}
	return duration, nil
}

// ExtractThumbnail grabs the first frame as a jpg next to outputDir.
func ExtractThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "failed to create thumbnail dir")
	}
	outputPath := filepath.Join(outputDir, "thumbnail.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:00",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", errors.WithMessage(err, "failed to extract thumbnail")
	}
	return outputPath, nil
}
