package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioInfo — метаданные аудиозаписи произношения.
type AudioInfo struct {
	Duration float64 `json:"duration"` // длительность в секундах
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// GetAudioInfo читает метаданные аудиофайла через ffprobe.
func GetAudioInfo(audioPath string) (*AudioInfo, error) {
	fileInfo, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("аудиофайл не найден: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(audioPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать метаданные аудио: %v", err)
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("не удалось разобрать метаданные аудио: %v", err)
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}

	return &AudioInfo{
		Duration: duration,
		Format:   result.Format.Format,
		Size:     size,
	}, nil
}

// TranscodeToMP3 перекодирует запись произношения в компактный
// моно-MP3, пригодный для раздачи в браузер.
func TranscodeToMP3(srcPath, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("не удалось создать каталог для аудио: %v", err)
	}

	return ffmpeg.Input(srcPath).
		Output(dstPath, ffmpeg.KwArgs{
			"acodec": "libmp3lame",
			"ab":     "64k",
			"ac":     "1", // моно достаточно для речи
		}).
		OverWriteOutput().
		Run()
}
