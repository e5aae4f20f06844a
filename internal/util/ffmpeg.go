package util

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaInfo 录屏文件的基本信息
type MediaInfo struct {
	Duration float64 `json:"duration"` // 秒
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
}

// ProbeMedia 使用 ffprobe 读取媒体元数据，需要系统安装 ffmpeg
func ProbeMedia(path string) (*MediaInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe media: %w", err)
	}
	return parseProbeOutput(out)
}

func parseProbeOutput(out string) (*MediaInfo, error) {
	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}

	info := &MediaInfo{Format: result.Format.Format}
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			info.Width = stream.Width
			info.Height = stream.Height
			break
		}
	}

	// webm 录屏常见 duration 缺失
	if d, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
		info.Duration = d
	}
	return info, nil
}
