package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat 表示目标格式不在支持范围内。
var ErrUnsupportedFormat = errors.New("不支持的图像格式")

// Format 是输出图像格式的标识。
type Format string

// 支持的输出格式。
const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
)

// Detect 确定输出格式：显式指定优先，否则按输出路径扩展名推断。
// 常见别名（tif、jpg）会归一化到标准格式名。
func Detect(explicit, path string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(explicit))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch name {
	case "png":
		return PNG, nil
	case "tiff", "tif":
		return TIFF, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Encode 将图像按指定格式写入 w。
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteFile 将图像编码后写入文件。先在内存中完成编码，避免留下残缺输出。
func WriteFile(path string, img image.Image, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return fmt.Errorf("编码图像失败: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}
