package layout

// 该文件定义布局结果与样式描述，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与尺寸均以像素为单位（画布单位在光栅化时与像素一一对应）。

// Kind 区分可绘制元素的类型。
type Kind string

const (
	// KindHeader 表示文件名头部行。
	KindHeader Kind = "header"
	// KindTextLine 表示一行折行后的正文文本。
	KindTextLine Kind = "textLine"
	// KindBorder 表示一列的边框矩形，W/H 为外框尺寸。
	KindBorder Kind = "border"
	// KindSeparator 表示文件名头部下方的分隔线，W 为线长。
	KindSeparator Kind = "separator"
)

// Placement 表示一个已经确定绝对像素位置的可绘制元素。
type Placement struct {
	Kind    Kind    `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	Content string  `json:"content,omitempty"`
	Column  int     `json:"column"`
}

// Result 保存最终画布尺寸、全部元素位置与生效的样式，是布局阶段的终态输出。
type Result struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`
	Style      Style       `json:"style"`
}

// Input 表示一个待布局的输入文件：相对路径与原始文本内容。
type Input struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Block 表示一个输入文件折行后的文本块，创建后不再修改。
type Block struct {
	Name   string   `json:"name"`
	Header string   `json:"header"`
	Lines  []string `json:"lines"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Style 汇总全部样式与几何参数，作为单个不可变值传入布局与渲染。
type Style struct {
	FontSize       float64 `json:"fontSize"`
	LineSpacing    float64 `json:"lineSpacing"`
	Padding        float64 `json:"padding"`
	BorderWidth    float64 `json:"borderWidth"`
	MaxWidth       float64 `json:"maxWidth"`
	ColumnSpacing  float64 `json:"columnSpacing"`
	SectionSpacing float64 `json:"sectionSpacing"`
	Background     Color   `json:"background"`
	Text           Color   `json:"text"`
	Border         Color   `json:"border"`
	Filename       Color   `json:"filename"`
	// HeaderTemplate 支持 ${path}/${name}/${ext}/${index}/${lines}/${total} 占位符。
	HeaderTemplate string `json:"headerTemplate"`
}

// DefaultStyle 返回默认样式，与命令行默认值保持一致。
func DefaultStyle() Style {
	return Style{
		FontSize:       12,
		LineSpacing:    2,
		Padding:        20,
		BorderWidth:    3,
		MaxWidth:       1200,
		ColumnSpacing:  24,
		SectionSpacing: 12,
		Background:     Color{R: 255, G: 255, B: 255},
		Text:           Color{},
		Border:         Color{},
		Filename:       Color{B: 255},
		HeaderTemplate: "📄 ${path}",
	}
}

// HeaderHeight 返回文件名头部区域高度。
func (s Style) HeaderHeight() float64 { return s.FontSize + 10 }

// LineHeight 返回单行正文占用高度。
func (s Style) LineHeight() float64 { return s.FontSize + s.LineSpacing }
