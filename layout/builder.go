package layout

import (
	"errors"
	"fmt"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/textshot/binding"
)

// minCharsPerLine 是自动推导时每行的最少字符数，避免退化布局。
const minCharsPerLine = 8

// HeaderFontDelta 是文件名头部相对正文的字号增量，度量与绘制必须使用同一值。
const HeaderFontDelta = 2

var (
	// ErrEmptyInput 表示没有任何输入文件可供布局。
	ErrEmptyInput = errors.New("没有可布局的输入文件")
	// ErrInvalidConfig 表示几何参数无法构成有效布局。
	ErrInvalidConfig = errors.New("布局参数无效")
)

// Build 根据输入文件与样式计算画布尺寸与全部元素的绝对像素位置。
// 纯函数：不做任何 I/O，结果仅由输入、样式与选项决定。
func Build(inputs []Input, style Style, opts BuildOptions) (*Result, error) {
	if opts.Metrics == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量后端 Metrics")
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}
	if style.FontSize <= 0 {
		return nil, fmt.Errorf("%w: font-size=%g", ErrInvalidConfig, style.FontSize)
	}
	if opts.Columns < 0 {
		return nil, fmt.Errorf("%w: columns=%d", ErrInvalidConfig, opts.Columns)
	}
	if opts.CharsPerLine < 0 {
		return nil, fmt.Errorf("%w: chars-per-line=%d", ErrInvalidConfig, opts.CharsPerLine)
	}

	advance, err := opts.Metrics.Advance(style.FontSize)
	if err != nil {
		return nil, fmt.Errorf("获取字体度量失败: %w", err)
	}
	headerAdvance, err := opts.Metrics.Advance(style.FontSize + HeaderFontDelta)
	if err != nil {
		return nil, fmt.Errorf("获取头部字体度量失败: %w", err)
	}
	if advance <= 0 || headerAdvance <= 0 {
		return nil, fmt.Errorf("%w: 字符前进宽度 %g 无效", ErrInvalidConfig, advance)
	}

	charsPerLine, err := resolveCharsPerLine(style, opts, advance)
	if err != nil {
		return nil, err
	}

	blocks := buildBlocks(inputs, style.HeaderTemplate, charsPerLine)
	colWidth := contentWidth(blocks, advance, headerAdvance)
	columns := resolveColumns(style, opts, colWidth, len(blocks))
	cols := distribute(blocks, columns, opts.BalanceColumns)
	return assemble(cols, colWidth, style), nil
}

// resolveCharsPerLine 计算每行字符数：显式值优先，否则按可用列宽与字符前进宽度推导。
func resolveCharsPerLine(style Style, opts BuildOptions, advance float64) (int, error) {
	available := style.MaxWidth - 2*style.Padding - 2*style.BorderWidth
	if available < float64(minCharsPerLine)*advance {
		return 0, fmt.Errorf("%w: max-width=%g 不足以容纳一列", ErrInvalidConfig, style.MaxWidth)
	}
	if opts.CharsPerLine > 0 {
		return opts.CharsPerLine, nil
	}
	return int(available / advance), nil
}

// resolveColumns 计算列数：显式值优先，否则取满足总宽不超过 MaxWidth 的最大列数，
// 上限为块数（避免产生空列），下限为 1。
func resolveColumns(style Style, opts BuildOptions, colWidth float64, blockCount int) int {
	if opts.Columns > 0 {
		return opts.Columns
	}
	full := colWidth + 2*style.Padding + style.BorderWidth
	n := int((style.MaxWidth - style.BorderWidth + style.ColumnSpacing) / (full + style.ColumnSpacing))
	if n < 1 {
		n = 1
	}
	if n > blockCount {
		n = blockCount
	}
	return n
}

// buildBlocks 将每个输入文件折行为 Block，并按模板生成头部文本。
func buildBlocks(inputs []Input, template string, charsPerLine int) []Block {
	blocks := make([]Block, 0, len(inputs))
	for i, in := range inputs {
		lines := wrapText(in.Content, charsPerLine)
		ext := path.Ext(in.Name)
		data := map[string]any{
			"path":  in.Name,
			"name":  strings.TrimSuffix(path.Base(in.Name), ext),
			"ext":   strings.TrimPrefix(ext, "."),
			"index": i + 1,
			"total": len(inputs),
			"lines": len(lines),
		}
		blocks = append(blocks, Block{
			Name:   in.Name,
			Header: binding.Interpolate(template, data),
			Lines:  lines,
		})
	}
	return blocks
}

// contentWidth 返回所有块中最宽一行的像素宽度（含头部行，头部字号更大）。
func contentWidth(blocks []Block, advance, headerAdvance float64) float64 {
	w := 0.0
	for _, b := range blocks {
		if hw := float64(runewidth.StringWidth(b.Header)) * headerAdvance; hw > w {
			w = hw
		}
		for _, ln := range b.Lines {
			if lw := float64(runewidth.StringWidth(ln)) * advance; lw > w {
				w = lw
			}
		}
	}
	return w
}

type column struct {
	blocks []Block
	lines  int
}

// distribute 将块分配到各列，不拆分块。
//
// balance=false：按输入顺序顺序填充。每列以 ceil(总行数/列数) 为目标容量，
// 仅当放入下一个块会超出目标且右侧还有列时才换列。
// balance=true：LPT 列表调度。按行数降序稳定排序后，逐个放入当前总行数最少的列，
// 行数相同取列下标最小者。启发式而非最优划分。
func distribute(blocks []Block, columns int, balance bool) []column {
	cols := make([]column, columns)

	if balance {
		order := make([]int, len(blocks))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return len(blocks[order[a]].Lines) > len(blocks[order[b]].Lines)
		})
		for _, idx := range order {
			target := 0
			for c := 1; c < columns; c++ {
				if cols[c].lines < cols[target].lines {
					target = c
				}
			}
			cols[target].blocks = append(cols[target].blocks, blocks[idx])
			cols[target].lines += len(blocks[idx].Lines)
		}
		return cols
	}

	total := 0
	for _, b := range blocks {
		total += len(b.Lines)
	}
	capacity := int(math.Ceil(float64(total) / float64(columns)))
	cur := 0
	for _, b := range blocks {
		if cur < columns-1 && len(cols[cur].blocks) > 0 && cols[cur].lines+len(b.Lines) > capacity {
			cur++
		}
		cols[cur].blocks = append(cols[cur].blocks, b)
		cols[cur].lines += len(b.Lines)
	}
	return cols
}

// assemble 逐列自上而下、从左到右累加坐标，生成画布尺寸与全部 Placement。
func assemble(cols []column, colWidth float64, style Style) *Result {
	slotW := colWidth + 2*style.Padding + style.BorderWidth
	lineH := style.LineHeight()
	headerH := style.HeaderHeight()

	tallest := 0.0
	for _, col := range cols {
		if h := columnHeight(col, style); h > tallest {
			tallest = h
		}
	}

	width := float64(len(cols))*slotW + style.BorderWidth + float64(len(cols)-1)*style.ColumnSpacing
	height := 2*style.Padding + 2*style.BorderWidth + tallest

	var placements []Placement
	for i, col := range cols {
		x := float64(i) * (slotW + style.ColumnSpacing)
		placements = append(placements, Placement{
			Kind:   KindBorder,
			X:      x,
			W:      slotW + style.BorderWidth,
			H:      height,
			Column: i,
		})
		textX := x + style.BorderWidth + style.Padding
		y := style.BorderWidth + style.Padding
		for bi, block := range col.blocks {
			if bi > 0 {
				y += style.SectionSpacing
			}
			placements = append(placements, Placement{
				Kind:    KindHeader,
				X:       textX,
				Y:       y,
				W:       colWidth,
				H:       headerH - 2,
				Content: block.Header,
				Column:  i,
			})
			// 分隔线占据头部区域最后 2 像素，与头部文本和首行正文均不重叠
			placements = append(placements, Placement{
				Kind:   KindSeparator,
				X:      x + style.BorderWidth,
				Y:      y + headerH - 2,
				W:      slotW - style.BorderWidth,
				H:      1,
				Column: i,
			})
			y += headerH
			for _, ln := range block.Lines {
				placements = append(placements, Placement{
					Kind:    KindTextLine,
					X:       textX,
					Y:       y,
					W:       colWidth,
					H:       lineH,
					Content: ln,
					Column:  i,
				})
				y += lineH
			}
		}
	}

	return &Result{Width: width, Height: height, Placements: placements, Style: style}
}

// columnHeight 返回一列内容自身的高度（不含边框与内边距）。
func columnHeight(col column, style Style) float64 {
	h := float64(len(col.blocks))*style.HeaderHeight() + float64(col.lines)*style.LineHeight()
	if len(col.blocks) > 1 {
		h += float64(len(col.blocks)-1) * style.SectionSpacing
	}
	return h
}
