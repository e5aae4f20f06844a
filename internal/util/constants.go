package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传目录前缀
const (
	ImageDir     = "images"
	RecordingDir = "recordings"
)

// 题目图片允许的扩展名
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// 作答录屏允许的扩展名
var AllowedRecordingExtensions = []string{".webm", ".mp4", ".mov", ".mkv", ".ogg"}

// 按文件内容嗅探出的 MIME 类型前缀，扩展名合法但内容不符的文件同样跳过
var AllowedImageMimeTypes = []string{"image/"}

// 录屏容器格式较多，嗅探不出具体类型的二进制内容也放行
var AllowedRecordingMimeTypes = []string{"video/", "audio/", "application/ogg", "application/octet-stream"}

// 请求头 Authentication-Token 兼容旧版前端
const AuthTokenHeader = "Authentication-Token"
