package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// 负责扫描目录并读取文本文件内容。编码策略：优先按 UTF-8 解读，
// 无效时整体按 Latin-1 宽容解码，保证任意字节序列都能进入布局。

// ErrNoTextFiles 表示目录中没有任何可识别的文本文件。
var ErrNoTextFiles = errors.New("目录中没有可识别的文本文件")

// textExtensions 是递归扫描时识别为文本的扩展名集合。
var textExtensions = map[string]struct{}{
	".txt": {}, ".md": {}, ".go": {}, ".java": {}, ".php": {}, ".css": {},
	".xml": {}, ".json": {}, ".js": {}, ".py": {}, ".html": {}, ".htm": {},
	".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".sql": {},
	".yml": {}, ".yaml": {}, ".ini": {},
}

// File 表示一个已读入内存的文本文件。Path 为相对扫描根目录的斜杠路径。
type File struct {
	Path    string
	Content string
}

// Scan 递归扫描 dir 下的全部文本文件，按相对路径升序返回内容。
// 目录为空或没有可识别文件时返回 ErrNoTextFiles。
func Scan(dir string) ([]File, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := textExtensions[strings.ToLower(filepath.Ext(p))]; ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("扫描目录 %s 失败: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoTextFiles)
	}

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		content, err := readText(p)
		if err != nil {
			return nil, fmt.Errorf("读取文件 %s 失败: %w", p, err)
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Content: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// readText 读取文件内容，非 UTF-8 输入回退为 Latin-1 解码。
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("按 Latin-1 回退解码失败: %w", err)
	}
	return string(decoded), nil
}
