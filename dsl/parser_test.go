package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/wrapview/dsl"
)

const sampleDSL = `
doc Card v1 {
  meta {
    title: "Demo"
    keywords: [
      "card"
      "preview"
    ]
  }

  resources {
    font Serif {
      src: "builtin:serif"
    }

    color Accent = #0F62FE
    style Heading { font: Serif size: 14pt color: Accent weight: bold }
  }

  view width 120mm padding 4mm 2mm {
    image Cover lines 3 gap 2mm   # 图片覆盖三行
    title Heading max-lines 3 { "Hello, ${user.name}" }
    text Body max-lines 4 gap 2mm {
      "First paragraph\nSecond"
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Card" || doc.Version != "v1" {
		t.Fatalf("unexpected header %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	meta := doc.Sections[0].Meta
	if meta == nil {
		t.Fatalf("meta section missing")
	}
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || string(*title.Value.String) != "Demo" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}

	res := doc.Sections[1].Resources
	if res == nil || len(res.Block.Statements) != 3 {
		t.Fatalf("resources section malformed: %+v", doc.Sections[1])
	}
	color := res.Block.Statements[1].Command
	if color == nil || color.Name != "color" || color.Args[len(color.Args)-1].Value != "#0F62FE" {
		t.Fatalf("unexpected color command: %+v", color)
	}
	style := res.Block.Statements[2].Command
	if style == nil || style.Block == nil || len(style.Block.Statements) != 4 {
		t.Fatalf("style should carry 4 properties: %+v", style)
	}
	font := style.Block.Statements[0].Assignment
	if font.Value.Expr == nil || tokensToString(font.Value.Expr.Parts) != "Serif" {
		t.Fatalf("font property should be an expression, got %+v", font.Value)
	}

	view := doc.Sections[2].View
	if view == nil {
		t.Fatalf("view section missing, kind=%s", doc.Sections[2].Kind())
	}
	if got := tokensToString(view.Params); got != "width 120mm padding 4mm 2mm" {
		t.Fatalf("unexpected view params: %s", got)
	}
	if len(view.Block.Statements) != 3 {
		t.Fatalf("expected 3 view statements, got %d", len(view.Block.Statements))
	}

	image := view.Block.Statements[0].Command
	if image == nil || image.Name != "image" || tokensToString(image.Args) != "Cover lines 3 gap 2mm" {
		t.Fatalf("unexpected image command: %+v", image)
	}

	titleCmd := view.Block.Statements[1].Command
	if titleCmd == nil || titleCmd.Name != "title" || titleCmd.Block == nil {
		t.Fatalf("unexpected title command: %+v", titleCmd)
	}
	if got := string(titleCmd.Block.Statements[0].Text.Value); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation in title literal, got %s", got)
	}

	textCmd := view.Block.Statements[2].Command
	if textCmd == nil || textCmd.Args[0].Value != "Body" {
		t.Fatalf("unexpected text command: %+v", textCmd)
	}
	if got := string(textCmd.Block.Statements[0].Text.Value); got != "First paragraph\nSecond" {
		t.Fatalf("string escapes should be decoded, got %q", got)
	}
}

func TestParseLabel(t *testing.T) {
	doc, err := dsl.ParseString(`doc L v1 { label max-width 80mm { text Body max-lines 2 { "caption" } } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Kind() != "label" {
		t.Fatalf("expected a label section, got %+v", doc.Sections)
	}
	label := doc.Sections[0].Label
	if tokensToString(label.Params) != "max-width 80mm" {
		t.Fatalf("unexpected label params: %+v", label.Params)
	}
	if cmd := label.Block.Statements[0].Command; cmd == nil || cmd.Name != "text" {
		t.Fatalf("expected text command in label")
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	if _, err := dsl.ParseString(`doc X v1 { page A4 { } }`); err == nil {
		t.Fatalf("unknown section should fail to parse")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
