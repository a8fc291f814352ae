package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DebugSummary 汇总每条文本流的行数，便于快速比对布局变化。
type DebugSummary struct {
	TitleLines    int        `json:"titleLines"`
	TitleNarrowed int        `json:"titleNarrowed"`
	TextLines     int        `json:"textLines"`
	TextNarrowed  int        `json:"textNarrowed"`
	Footprint     *Footprint `json:"footprint,omitempty"`
}

type debugDump struct {
	Summary DebugSummary `json:"summary"`
	Layout  *Result      `json:"layout"`
}

// Summarize 计算 res 的调试摘要。
func Summarize(res *Result) DebugSummary {
	s := DebugSummary{
		TitleLines:    len(res.Title.Lines),
		TitleNarrowed: res.Title.Narrowed,
		TextLines:     len(res.Text.Lines),
		TextNarrowed:  res.Text.Narrowed,
	}
	if img := res.Image; img != nil {
		s.Footprint = &Footprint{Width: img.Width, Height: img.Height}
	}
	return s
}

// EncodeDebug 以缩进 JSON 写出摘要与完整布局。结果中不含 +Inf，可以直接编码。
func EncodeDebug(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("布局结果为空")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(debugDump{Summary: Summarize(res), Layout: res})
}

// WriteDebugJSON 将布局结果写入 path。
func WriteDebugJSON(res *Result, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeDebug(f, res)
}
