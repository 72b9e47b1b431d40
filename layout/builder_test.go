package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// stubMetrics 是一个最小实现，仅用于测试，避免引入 renderer 造成循环依赖。
// 任意字号下每个显示单元格固定前进 7 像素，便于手工验算几何结果。
type stubMetrics struct{}

func (s *stubMetrics) Advance(fontSize float64) (float64, error) {
	return 7, nil
}

func buildWithStub(t *testing.T, inputs []Input, opts BuildOptions) *Result {
	t.Helper()
	opts.Metrics = &stubMetrics{}
	res, err := Build(inputs, DefaultStyle(), opts)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

func placementsOfKind(res *Result, kind Kind) []Placement {
	var out []Placement
	for _, p := range res.Placements {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// TestSingleFileSingleColumn 验证最小场景：一个文件、一列、显式每行字符数。
// 正文应折为两行，输出 1 个头部与 2 个正文行，且画布尺寸可手工验算。
func TestSingleFileSingleColumn(t *testing.T) {
	inputs := []Input{{Name: "a.txt", Content: "hello world"}}
	res := buildWithStub(t, inputs, BuildOptions{Columns: 1, CharsPerLine: 5})

	headers := placementsOfKind(res, KindHeader)
	lines := placementsOfKind(res, KindTextLine)
	if len(headers) != 1 || len(lines) != 2 {
		t.Fatalf("元素数量错误: headers=%d lines=%d，期望 1/2", len(headers), len(lines))
	}
	if headers[0].Content != "📄 a.txt" {
		t.Fatalf("头部内容错误: %q", headers[0].Content)
	}
	if lines[0].Content != "hello" || lines[1].Content != "world" {
		t.Fatalf("折行结果错误: %q / %q", lines[0].Content, lines[1].Content)
	}

	// 列宽由最宽行决定：头部 "📄 a.txt" 占 8 个显示单元格 × 7 = 56。
	// slotW = 56 + 2*20 + 3 = 99；width = 99 + 3 = 102。
	// height = 2*20 + 2*3 + (12+10) + 2*(12+2) = 96。
	if !eq(res.Width, 102) {
		t.Fatalf("画布宽度错误: got=%g want=102", res.Width)
	}
	if !eq(res.Height, 96) {
		t.Fatalf("画布高度错误: got=%g want=96", res.Height)
	}
	if got := len(placementsOfKind(res, KindBorder)); got != 1 {
		t.Fatalf("边框数量错误: %d", got)
	}
	if got := len(placementsOfKind(res, KindSeparator)); got != 1 {
		t.Fatalf("分隔线数量错误: %d", got)
	}
}

// TestBalanceEqualBlocks 验证均衡分配：4 个各 10 行的文件分到 2 列，每列 20 行。
func TestBalanceEqualBlocks(t *testing.T) {
	makeContent := func(n int) string {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i)
		}
		return strings.Join(lines, "\n")
	}
	inputs := []Input{
		{Name: "a.txt", Content: makeContent(10)},
		{Name: "b.txt", Content: makeContent(10)},
		{Name: "c.txt", Content: makeContent(10)},
		{Name: "d.txt", Content: makeContent(10)},
	}
	res := buildWithStub(t, inputs, BuildOptions{Columns: 2, BalanceColumns: true, CharsPerLine: 40})

	perColumn := map[int]int{}
	for _, p := range placementsOfKind(res, KindTextLine) {
		perColumn[p.Column]++
	}
	if perColumn[0] != 20 || perColumn[1] != 20 {
		t.Fatalf("均衡分配错误: col0=%d col1=%d，期望各 20", perColumn[0], perColumn[1])
	}
	headerCols := map[int]int{}
	for _, p := range placementsOfKind(res, KindHeader) {
		headerCols[p.Column]++
	}
	if headerCols[0] != 2 || headerCols[1] != 2 {
		t.Fatalf("头部分配错误: col0=%d col1=%d，期望各 2", headerCols[0], headerCols[1])
	}
}

// TestBalanceBoundedByLargestBlock 验证均衡分配的质量上界：
// 最高列的行数不超过 ceil(总行数/列数) 加上最大单块行数（块不可拆分导致的最坏偏差）。
func TestBalanceBoundedByLargestBlock(t *testing.T) {
	makeContent := func(n int) string {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i)
		}
		return strings.Join(lines, "\n")
	}
	blockLines := []int{9, 7, 5, 3, 1}
	inputs := make([]Input, len(blockLines))
	total, maxBlock := 0, 0
	for i, n := range blockLines {
		inputs[i] = Input{Name: fmt.Sprintf("f%d.txt", i), Content: makeContent(n)}
		total += n
		if n > maxBlock {
			maxBlock = n
		}
	}

	for _, columns := range []int{2, 3} {
		res := buildWithStub(t, inputs, BuildOptions{Columns: columns, BalanceColumns: true, CharsPerLine: 40})
		perColumn := map[int]int{}
		for _, p := range placementsOfKind(res, KindTextLine) {
			perColumn[p.Column]++
		}
		maxCol := 0
		for _, n := range perColumn {
			if n > maxCol {
				maxCol = n
			}
		}
		bound := int(math.Ceil(float64(total)/float64(columns))) + maxBlock
		if maxCol > bound {
			t.Fatalf("columns=%d 最高列 %d 行，超过上界 %d", columns, maxCol, bound)
		}
	}
}

// TestBalanceTieLowestColumn 验证行数相同时放入下标最小的列。
func TestBalanceTieLowestColumn(t *testing.T) {
	inputs := []Input{
		{Name: "a.txt", Content: "one\ntwo"},
		{Name: "b.txt", Content: "one\ntwo"},
	}
	res := buildWithStub(t, inputs, BuildOptions{Columns: 2, BalanceColumns: true, CharsPerLine: 40})

	headers := placementsOfKind(res, KindHeader)
	if len(headers) != 2 {
		t.Fatalf("头部数量错误: %d", len(headers))
	}
	if headers[0].Column != 0 || !strings.Contains(headers[0].Content, "a.txt") {
		t.Fatalf("首个块应落在第 0 列: %+v", headers[0])
	}
	if headers[1].Column != 1 || !strings.Contains(headers[1].Content, "b.txt") {
		t.Fatalf("第二个块应落在第 1 列: %+v", headers[1])
	}
}

// TestSequentialFillKeepsOrder 验证非均衡模式按输入顺序填充、不交错。
// 行数 5/1/1 分两列：首块独占超出目标容量也不回退，其余顺序进入下一列。
func TestSequentialFillKeepsOrder(t *testing.T) {
	inputs := []Input{
		{Name: "a.txt", Content: "1\n2\n3\n4\n5"},
		{Name: "b.txt", Content: "x"},
		{Name: "c.txt", Content: "y"},
	}
	res := buildWithStub(t, inputs, BuildOptions{Columns: 2, CharsPerLine: 40})

	headers := placementsOfKind(res, KindHeader)
	if len(headers) != 3 {
		t.Fatalf("头部数量错误: %d", len(headers))
	}
	wantCols := []int{0, 1, 1}
	for i, h := range headers {
		want := fmt.Sprintf("📄 %c.txt", 'a'+i)
		if h.Content != want {
			t.Fatalf("头部顺序错误: 第 %d 个为 %q，期望 %q", i, h.Content, want)
		}
		if h.Column != wantCols[i] {
			t.Fatalf("列分配错误: %q 落在第 %d 列，期望第 %d 列", h.Content, h.Column, wantCols[i])
		}
	}
}

// TestAutoColumnsRespectsMaxWidth 验证自动列数：列数不超过块数，总宽不超过 max-width。
func TestAutoColumnsRespectsMaxWidth(t *testing.T) {
	inputs := make([]Input, 6)
	for i := range inputs {
		inputs[i] = Input{Name: fmt.Sprintf("f%d.txt", i), Content: "0123456789"}
	}
	res := buildWithStub(t, inputs, BuildOptions{CharsPerLine: 40})

	borders := placementsOfKind(res, KindBorder)
	if len(borders) == 0 || len(borders) > len(inputs) {
		t.Fatalf("列数超出范围: %d", len(borders))
	}
	if res.Width > DefaultStyle().MaxWidth {
		t.Fatalf("总宽超出 max-width: %g > %g", res.Width, DefaultStyle().MaxWidth)
	}
}

// TestPlacementsWithinCanvas 断言所有元素都落在画布范围内。
func TestPlacementsWithinCanvas(t *testing.T) {
	inputs := []Input{
		{Name: "a.txt", Content: strings.Repeat("alpha beta gamma delta ", 20)},
		{Name: "b.md", Content: "# title\n\nbody text here"},
		{Name: "c.go", Content: "package main\n\nfunc main() {}\n"},
	}
	res := buildWithStub(t, inputs, BuildOptions{Columns: 2, BalanceColumns: true, CharsPerLine: 24})

	const eps = 1e-6
	for i, p := range res.Placements {
		if p.X < -eps || p.Y < -eps {
			t.Fatalf("元素 %d 坐标为负: %+v", i, p)
		}
		if p.X+p.W > res.Width+eps {
			t.Fatalf("元素 %d 超出画布右缘: x+w=%g width=%g", i, p.X+p.W, res.Width)
		}
		if p.Y+p.H > res.Height+eps {
			t.Fatalf("元素 %d 超出画布下缘: y+h=%g height=%g", i, p.Y+p.H, res.Height)
		}
	}
}

// TestBuildErrors 覆盖空输入与非法参数的错误分类。
func TestBuildErrors(t *testing.T) {
	valid := []Input{{Name: "a.txt", Content: "hello"}}

	if _, err := Build(nil, DefaultStyle(), BuildOptions{Metrics: &stubMetrics{}}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("空输入应返回 ErrEmptyInput，实际: %v", err)
	}

	bad := DefaultStyle()
	bad.FontSize = 0
	if _, err := Build(valid, bad, BuildOptions{Metrics: &stubMetrics{}}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("零字号应返回 ErrInvalidConfig，实际: %v", err)
	}

	if _, err := Build(valid, DefaultStyle(), BuildOptions{Metrics: &stubMetrics{}, Columns: -1}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("负列数应返回 ErrInvalidConfig，实际: %v", err)
	}

	narrow := DefaultStyle()
	narrow.MaxWidth = 50
	if _, err := Build(valid, narrow, BuildOptions{Metrics: &stubMetrics{}}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("过窄 max-width 应返回 ErrInvalidConfig，实际: %v", err)
	}

	if _, err := Build(valid, DefaultStyle(), BuildOptions{}); err == nil {
		t.Fatalf("缺少 Metrics 应报错")
	}
}

// TestHeaderTemplateData 验证头部模板可引用路径、序号与行数。
func TestHeaderTemplateData(t *testing.T) {
	style := DefaultStyle()
	style.HeaderTemplate = "${index}/${total} ${name}.${ext} (${lines})"
	inputs := []Input{
		{Name: "docs/readme.md", Content: "one\ntwo\nthree"},
		{Name: "main.go", Content: "package main"},
	}
	res, err := Build(inputs, style, BuildOptions{Metrics: &stubMetrics{}, Columns: 1, CharsPerLine: 40})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	headers := placementsOfKind(res, KindHeader)
	if len(headers) != 2 {
		t.Fatalf("头部数量错误: %d", len(headers))
	}
	if headers[0].Content != "1/2 readme.md (3)" {
		t.Fatalf("头部模板渲染错误: %q", headers[0].Content)
	}
	if headers[1].Content != "2/2 main.go (1)" {
		t.Fatalf("头部模板渲染错误: %q", headers[1].Content)
	}
}

func eq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
