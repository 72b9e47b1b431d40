package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/textshot/encoder"
	"github.com/ByLCY/textshot/layout"
	"github.com/ByLCY/textshot/renderer"
	canvasrenderer "github.com/ByLCY/textshot/renderer/canvas"
	"github.com/ByLCY/textshot/source"
	"github.com/ByLCY/textshot/theme"
)

func main() {
	input := flag.String("in", ".", "文本文件目录")
	output := flag.String("out", "output/textshot.png", "图像输出路径")
	format := flag.String("format", "", "输出格式（默认按输出路径扩展名推断）")
	columns := flag.Int("columns", 0, "列数，0 表示按最大宽度自动计算")
	balance := flag.Bool("balance", true, "是否按行数均衡分配各列")
	charsPerLine := flag.Int("chars-per-line", 0, "每行字符数，0 表示按列宽自动计算")
	themePath := flag.String("theme", "", "主题文件路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	var r renderer.Renderer = canvasrenderer.NewRenderer()
	if err := run(*input, *output, *format, *themePath, *debug, *columns, *charsPerLine, *balance, r); err != nil {
		log.Fatalf("生成图像失败: %v", err)
	}
	fmt.Printf("已生成图像：%s\n", *output)
}

// run 串联扫描、布局、渲染与编码。
func run(inputDir, outputPath, format, themePath, debugPath string, columns, charsPerLine int, balance bool, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	outFormat, err := encoder.Detect(format, outputPath)
	if err != nil {
		return err
	}

	files, err := source.Scan(inputDir)
	if err != nil {
		return err
	}

	style := layout.DefaultStyle()
	if themePath != "" {
		style, err = loadTheme(themePath, style)
		if err != nil {
			return err
		}
	}

	m, ok := r.(layout.Metrics)
	if !ok {
		return fmt.Errorf("renderer 未实现字体度量接口")
	}

	inputs := make([]layout.Input, len(files))
	for i, f := range files {
		inputs[i] = layout.Input{Name: f.Path, Content: f.Content}
	}

	result, err := layout.Build(inputs, style, layout.BuildOptions{
		Metrics:        m,
		Columns:        columns,
		BalanceColumns: balance,
		CharsPerLine:   charsPerLine,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	img, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染图像失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return encoder.WriteFile(outputPath, img, outFormat)
}

func loadTheme(themePath string, base layout.Style) (layout.Style, error) {
	file, err := os.Open(themePath)
	if err != nil {
		return layout.Style{}, fmt.Errorf("无法打开主题文件 %s: %w", themePath, err)
	}
	defer file.Close()

	doc, err := theme.Parse(file)
	if err != nil {
		return layout.Style{}, fmt.Errorf("解析主题失败: %w", err)
	}
	style, err := theme.Resolve(doc, base)
	if err != nil {
		return layout.Style{}, fmt.Errorf("应用主题失败: %w", err)
	}
	return style, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
