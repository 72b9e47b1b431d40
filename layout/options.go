package layout

// BuildOptions 配置布局阶段所需的依赖与单次调用参数。
type BuildOptions struct {
	Metrics Metrics
	// Columns 为 0 时按 MaxWidth 自动推导列数。
	Columns int
	// BalanceColumns 为 true 时按总行数均衡各列，否则按输入顺序顺序填充。
	BalanceColumns bool
	// CharsPerLine 为 0 时按字体度量与列宽推导。
	CharsPerLine int
}

// Metrics 负责提供等宽字体在给定字号（像素）下的字符前进宽度（像素）。
type Metrics interface {
	Advance(fontSize float64) (float64, error)
}
