// Package fonts 提供内置字体（Latin Modern），DSL 中以 builtin:serif 等形式引用。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// Prefix 标记内置字体。
const Prefix = "builtin:"

// 缺少的字形组合退回到 regular。
var builtin = map[string][4][]byte{
	//        regular, bold, italic, bold-italic
	"serif": {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
	"sans":  {lmsans10regular.TTF, lmsans10bold.TTF, nil, nil},
	"mono":  {lmmono10regular.TTF, nil, nil, nil},
}

// IsBuiltin 判断 src 是否引用内置字体。
func IsBuiltin(src string) bool { return strings.HasPrefix(src, Prefix) }

// Load 返回内置字体的 TTF 数据。src 形如 "builtin:serif"，缺省为 serif。
func Load(src string, bold, italic bool) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(src, Prefix))
	if name == "" {
		name = "serif"
	}
	faces, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("未知内置字体 %s", src)
	}
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	if faces[i] == nil {
		return faces[0], nil
	}
	return faces[i], nil
}
