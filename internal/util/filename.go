package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// 净化后文件名的最大长度（按字符计，含扩展名）
const maxFilenameLength = 100

// SanitizeFilename 清理文件名，使其可安全用于文件系统：
// 替换非法字符为下划线，去掉首尾的点和空格，超长时保留扩展名截断，
// 结果为空时回退为 unnamed。仅用于输出文件名，不用于容器内工作表名。
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "_")
	s = strings.Trim(s, ". ")

	if runes := []rune(s); len(runes) > maxFilenameLength {
		ext := filepath.Ext(s)
		extRunes := []rune(ext)
		keep := maxFilenameLength - len(extRunes)
		if keep < 0 {
			keep = 0
			extRunes = extRunes[:maxFilenameLength]
		}
		base := []rune(strings.TrimSuffix(s, ext))
		if keep > len(base) {
			keep = len(base)
		}
		s = string(base[:keep]) + string(extRunes)
	}

	if s == "" {
		return "unnamed"
	}
	return s
}

// AllowedFile 检查文件扩展名是否在允许列表中（大小写不敏感）
func AllowedFile(name string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}
