package fonts

import (
	"fmt"

	"github.com/go-fonts/dejavu/dejavusansmono"
	"github.com/go-fonts/dejavu/dejavusansmonobold"
)

// 内置等宽字体（DejaVu Sans Mono），避免依赖运行环境中的字体文件。

// Mono 与 MonoBold 是内置字体的名称。
const (
	Mono     = "DejaVuSansMono"
	MonoBold = "DejaVuSansMono-Bold"
)

// Load 返回内置字体的字节数据。
func Load(name string) ([]byte, error) {
	switch name {
	case Mono:
		return dejavusansmono.TTF, nil
	case MonoBold:
		return dejavusansmonobold.TTF, nil
	}
	return nil, fmt.Errorf("未知的内置字体 %s", name)
}
