package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 同时接受 2024-05-03 与 2024-5-3
const quizDateLayout = "2006-1-2"

// ParseQuizDate 解析 YYYY-MM-DD 格式的测验日期
func ParseQuizDate(s string) (time.Time, error) {
	t, err := time.Parse(quizDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidQuizDate
	}
	return t, nil
}

// ParseQuizDuration 解析 HH:MM，分钟允许超过 59（按总分钟计算）
func ParseQuizDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidQuizDuration
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0, ErrInvalidQuizDuration
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return 0, ErrInvalidQuizDuration
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// FormatInterval 输出与区间字符串一致的格式：H:MM:SS，超过一天时为 "N day(s), H:MM:SS"
func FormatInterval(d time.Duration) string {
	total := int64(d / time.Second)
	days := total / 86400
	rest := total % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rest/3600, (rest%3600)/60, rest%60)

	switch {
	case days == 0:
		return clock
	case days == 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// NormalizeQuizDuration 将 HH:MM 转换为规范化的区间字符串
func NormalizeQuizDuration(s string) (string, error) {
	d, err := ParseQuizDuration(s)
	if err != nil {
		return "", err
	}
	return FormatInterval(d), nil
}
