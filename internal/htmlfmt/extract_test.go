package htmlfmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/riverfjs/formattedtext/internal/types"
)

var rawOpts = Options{SkipMarkdownPreprocessing: true}

func mustParse(t *testing.T, src string, opts Options) types.FormattedText {
	t.Helper()
	ft, err := Parse(src, opts)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return ft
}

func assertFormatted(t *testing.T, got, want types.FormattedText) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_InlineTags(t *testing.T) {
	got := mustParse(t, "Hello <b>world</b> and <i>you</i>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "Hello world and you",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 6, Length: 5},
			{Type: types.Italic, Offset: 16, Length: 3},
		},
	})
}

func TestExtract_TagTable(t *testing.T) {
	tests := []struct {
		tag  string
		want types.EntityKind
	}{
		{"b", types.Bold},
		{"strong", types.Bold},
		{"i", types.Italic},
		{"em", types.Italic},
		{"u", types.Underline},
		{"ins", types.Underline},
		{"s", types.Strike},
		{"strike", types.Strike},
		{"del", types.Strike},
		{"code", types.Code},
		{"pre", types.Pre},
		{"blockquote", types.Blockquote},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := mustParse(t, "<"+tt.tag+">x</"+tt.tag+">", rawOpts)
			assertFormatted(t, got, types.FormattedText{
				Text:     "x",
				Entities: []types.Entity{{Type: tt.want, Offset: 0, Length: 1}},
			})
		})
	}
}

func TestExtract_Anchors(t *testing.T) {
	tests := []struct {
		name string
		html string
		want types.Entity
	}{
		{
			name: "text url",
			html: `<a href="https://example.com">site</a>`,
			want: types.Entity{Type: types.TextURL, Offset: 0, Length: 4, URL: "https://example.com"},
		},
		{
			name: "bare url",
			html: `<a href="https://x.io">https://x.io</a>`,
			want: types.Entity{Type: types.URL, Offset: 0, Length: 12},
		},
		{
			name: "email",
			html: `<a href="mailto:a@b.co">a@b.co</a>`,
			want: types.Entity{Type: types.Email, Offset: 0, Length: 6},
		},
		{
			name: "phone",
			html: `<a href="tel:+123">+123</a>`,
			want: types.Entity{Type: types.Phone, Offset: 0, Length: 4},
		},
		{
			name: "mention override",
			html: `<a data-entity-type="MessageEntityMentionName" data-user-id="42">Bob</a>`,
			want: types.Entity{Type: types.MentionName, Offset: 0, Length: 3, UserID: "42"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.html, rawOpts)
			if len(got.Entities) != 1 {
				t.Fatalf("got %d entities, want 1: %+v", len(got.Entities), got.Entities)
			}
			if diff := cmp.Diff(tt.want, got.Entities[0]); diff != "" {
				t.Errorf("entity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_Overrides(t *testing.T) {
	got := mustParse(t, `a <span data-entity-type="MessageEntitySpoiler">secret</span> <span data-entity-type="bogus">x</span> <span>plain</span>`, rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "a secret x plain",
		Entities: []types.Entity{
			{Type: types.Spoiler, Offset: 2, Length: 6},
			{Type: types.Unknown, Offset: 9, Length: 1},
		},
	})
}

func TestExtract_PreLanguage(t *testing.T) {
	got := mustParse(t, `<pre data-language="go">x := 1</pre>`, rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "x := 1",
		Entities: []types.Entity{{Type: types.Pre, Offset: 0, Length: 6, Language: "go"}},
	})
}

func TestExtract_Images(t *testing.T) {
	got := mustParse(t, `hi <img data-document-id="123" alt="😀"> a<img alt="👍">b<img src="x.png">`, rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "hi 😀 a👍b",
		Entities: []types.Entity{{Type: types.CustomEmoji, Offset: 3, Length: 2, DocumentID: "123"}},
	})
}

func TestExtract_TrimShift(t *testing.T) {
	got := mustParse(t, "  \n <b>bold</b> tail  ", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "bold tail",
		Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 4}},
	})
}

func TestExtract_LeadingWhitespaceInsideEntity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  types.FormattedText
	}{
		{
			name:  "spaces",
			input: "<b>  hi</b> there",
			opts:  rawOpts,
			want: types.FormattedText{
				Text:     "hi there",
				Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 2}},
			},
		},
		{
			name:  "nbsp",
			input: "<b>&nbsp;hi</b> there",
			opts:  rawOpts,
			want: types.FormattedText{
				Text:     "hi there",
				Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 2}},
			},
		},
		{
			name:  "nbsp through markdown preprocessing",
			input: "<b>&nbsp;hi</b> there",
			opts:  Options{},
			want: types.FormattedText{
				Text:     "hi there",
				Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 2}},
			},
		},
		{
			name:  "text repeated later",
			input: "<b> x</b> x",
			opts:  rawOpts,
			want: types.FormattedText{
				Text:     "x x",
				Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 1}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFormatted(t, mustParse(t, tt.input, tt.opts), tt.want)
		})
	}
}

func TestExtract_ZeroWidthSpaceInsideEntity(t *testing.T) {
	got := mustParse(t, "<b>\u200bx</b> <i>y\u200b</i>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "x y",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 0, Length: 1},
			{Type: types.Italic, Offset: 2, Length: 1},
		},
	})
}

func TestExtract_BlockElements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.FormattedText
	}{
		{
			name:  "paragraphs",
			input: "<p>a</p><p><b>b</b></p>",
			want: types.FormattedText{
				Text:     "a\nb",
				Entities: []types.Entity{{Type: types.Bold, Offset: 2, Length: 1}},
			},
		},
		{
			name:  "divs between text",
			input: "x<div>a</div>y",
			want:  types.FormattedText{Text: "x\na\ny"},
		},
		{
			name:  "list",
			input: "<ul><li>one</li><li><b>two</b></li></ul>",
			want: types.FormattedText{
				Text:     "one\ntwo",
				Entities: []types.Entity{{Type: types.Bold, Offset: 4, Length: 3}},
			},
		},
		{
			name:  "existing newline is not doubled",
			input: "<p>a<br></p><p><i>b</i></p>",
			want: types.FormattedText{
				Text:     "a\nb",
				Entities: []types.Entity{{Type: types.Italic, Offset: 2, Length: 1}},
			},
		},
		{
			name:  "blockquote",
			input: "x<blockquote>quote</blockquote>y",
			want: types.FormattedText{
				Text:     "x\nquote\ny",
				Entities: []types.Entity{{Type: types.Blockquote, Offset: 2, Length: 5}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFormatted(t, mustParse(t, tt.input, rawOpts), tt.want)
		})
	}
}

func TestExtract_ZeroWidthSpace(t *testing.T) {
	got := mustParse(t, "\u200b<b>x</b>\u200b", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "x",
		Entities: []types.Entity{{Type: types.Bold, Offset: 0, Length: 1}},
	})
}

func TestExtract_TrailingNewlineFallback(t *testing.T) {
	got := mustParse(t, "a<pre>code\n</pre>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "a\ncode",
		Entities: []types.Entity{{Type: types.Pre, Offset: 2, Length: 4}},
	})
}

func TestExtract_DepthCap(t *testing.T) {
	src := "<b><i><u><s><code>x</code></s></u></i></b>"

	got := mustParse(t, src, rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "x",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 0, Length: 1},
			{Type: types.Italic, Offset: 0, Length: 1},
			{Type: types.Underline, Offset: 0, Length: 1},
			{Type: types.Strike, Offset: 0, Length: 1},
		},
	})

	shallow := rawOpts
	shallow.MaxTagDepth = 1
	got = mustParse(t, src, shallow)
	assertFormatted(t, got, types.FormattedText{
		Text: "x",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 0, Length: 1},
			{Type: types.Italic, Offset: 0, Length: 1},
		},
	})
}

func TestExtract_NestedInPlainElement(t *testing.T) {
	got := mustParse(t, "<p>one <b>two</b></p><p>three <i>four</i></p>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "one two\nthree four",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 4, Length: 3},
			{Type: types.Italic, Offset: 14, Length: 4},
		},
	})
}

func TestExtract_RepeatedText(t *testing.T) {
	got := mustParse(t, "x <b>x</b> x <i>x</i>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text: "x x x x",
		Entities: []types.Entity{
			{Type: types.Bold, Offset: 2, Length: 1},
			{Type: types.Italic, Offset: 6, Length: 1},
		},
	})
}

func TestExtract_UTF16(t *testing.T) {
	got := mustParse(t, "📌 你 <b>好</b>", rawOpts)
	assertFormatted(t, got, types.FormattedText{
		Text:     "📌 你 好",
		Entities: []types.Entity{{Type: types.Bold, Offset: 5, Length: 1}},
	})
}

func TestExtract_Empty(t *testing.T) {
	got := mustParse(t, "  <b></b>  ", rawOpts)
	assertFormatted(t, got, types.FormattedText{})
}

// fakeNode 一个不依赖 x/net/html 的 Node 实现
type fakeNode struct {
	kind     NodeKind
	tag      string
	text     string
	attrs    map[string]string
	children []Node
}

func (f fakeNode) Kind() NodeKind { return f.kind }
func (f fakeNode) Tag() string    { return f.tag }

func (f fakeNode) TextContent() string {
	if f.kind == TextNode {
		return f.text
	}
	s := ""
	for _, c := range f.children {
		s += c.TextContent()
	}
	return s
}

func (f fakeNode) Attr(key string) (string, bool) {
	v, ok := f.attrs[key]
	return v, ok
}

func (f fakeNode) Children() []Node { return f.children }

func textOf(s string) Node { return fakeNode{kind: TextNode, text: s} }

func TestExtract_CustomNodeTree(t *testing.T) {
	root := fakeNode{kind: ElementNode, tag: "DIV", children: []Node{
		textOf("go to "),
		fakeNode{kind: ElementNode, tag: "A", attrs: map[string]string{"href": "https://go.dev"}, children: []Node{textOf("go.dev")}},
		fakeNode{kind: CommentNode, text: "ignored"},
		textOf(" "),
		fakeNode{kind: ElementNode, tag: "STRONG", children: []Node{textOf("now")}},
	}}
	got := Extract(root, 0)
	assertFormatted(t, got, types.FormattedText{
		Text: "go to go.dev now",
		Entities: []types.Entity{
			{Type: types.TextURL, Offset: 6, Length: 6, URL: "https://go.dev"},
			{Type: types.Bold, Offset: 13, Length: 3},
		},
	})
}

func TestFromHTML_TextContent(t *testing.T) {
	root, err := ParseFragment("a<br>b<!-- c --><b>d</b>")
	if err != nil {
		t.Fatal(err)
	}
	n := FromHTML(root)
	if got := n.TextContent(); got != "a\nbd" {
		t.Errorf("TextContent() = %q", got)
	}
	kinds := []NodeKind{}
	for _, c := range n.Children() {
		kinds = append(kinds, c.Kind())
	}
	want := []NodeKind{TextNode, ElementNode, TextNode, CommentNode, ElementNode}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("child kinds mismatch (-want +got):\n%s", diff)
	}
	if tag := n.Children()[4].Tag(); tag != "B" {
		t.Errorf("Tag() = %q, want B", tag)
	}
}

func TestFromHTML_BlockTextContent(t *testing.T) {
	root, err := ParseFragment("<div>a</div><div>b<p>c</p></div>d")
	if err != nil {
		t.Fatal(err)
	}
	n := FromHTML(root)
	if got := n.TextContent(); got != "a\nb\nc\nd" {
		t.Errorf("TextContent() = %q", got)
	}
	if got := n.Children()[1].TextContent(); got != "b\nc" {
		t.Errorf("block TextContent() = %q, want no surrounding newlines", got)
	}
}
