// Package archive 把已生成的命名文件打包为 zip，纯打包，不理解文件内容。
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// Build 将命名文件集合打包为一个 zip（deflate 压缩）。
// order 指定条目顺序；order 中缺失的文件按名称排序追加，保证输出确定。
func Build(files map[string][]byte, order []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range entryNames(files, order) {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("创建 zip 条目 %q 失败: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			zw.Close()
			return nil, fmt.Errorf("写入 zip 条目 %q 失败: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("收尾 zip 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func entryNames(files map[string][]byte, order []string) []string {
	names := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, name := range order {
		if _, ok := files[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range files {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
