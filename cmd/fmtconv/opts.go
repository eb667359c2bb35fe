package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Options defines the command-line options for fmtconv
type Options struct {
	Config string `long:"config" short:"c" env:"FMTCONV_CONFIG" description:"Path to a YAML config file (uses embedded default if not specified)"`
	Pretty bool   `long:"pretty" env:"FMTCONV_PRETTY" description:"Indent JSON output (default when stdout is a terminal)"`

	Markdown MarkdownCmd `command:"markdown" description:"Parse markdown into text and entities"`
	HTML     HTMLCmd     `command:"html" description:"Extract text and entities from HTML"`
	Render   RenderCmd   `command:"render" description:"Serialize text and entities (JSON) to HTML"`
	Split    SplitCmd    `command:"split" description:"Split text and entities (JSON) into chunks"`
}

// InputArgs is the optional input file shared by all commands
type InputArgs struct {
	File string `positional-arg-name:"FILE" description:"Input file, stdin if omitted or -"`
}

// MarkdownCmd defines the 'markdown' command
type MarkdownCmd struct {
	HTML bool      `long:"html" description:"Print HTML instead of JSON"`
	Args InputArgs `positional-args:"yes"`

	global *Options
}

// Execute runs the markdown command
func (c *MarkdownCmd) Execute(args []string) error {
	return runMarkdown(c.global, c)
}

// HTMLCmd defines the 'html' command
type HTMLCmd struct {
	Links         bool      `long:"links" description:"Convert [text](link) into links"`
	SkipMarkdown  bool      `long:"skip-markdown" description:"Parse the HTML as is, without markdown pre-processing"`
	EmojiFallback bool      `long:"emoji-fallback" description:"Rewrite [<img alt=\"x\">] to [x] before parsing"`
	MaxDepth      int       `long:"max-depth" description:"Maximum DOM depth (0 uses the configured value)"`
	Args          InputArgs `positional-args:"yes"`

	global *Options
}

// Execute runs the html command
func (c *HTMLCmd) Execute(args []string) error {
	return runHTML(c.global, c)
}

// RenderCmd defines the 'render' command
type RenderCmd struct {
	Args InputArgs `positional-args:"yes"`

	global *Options
}

// Execute runs the render command
func (c *RenderCmd) Execute(args []string) error {
	return runRender(c.global, c)
}

// SplitCmd defines the 'split' command
type SplitCmd struct {
	MaxLength int       `long:"max-length" short:"n" description:"Maximum chunk length in UTF-16 code units (0 uses the configured value)"`
	Args      InputArgs `positional-args:"yes"`

	global *Options
}

// Execute runs the split command
func (c *SplitCmd) Execute(args []string) error {
	return runSplit(c.global, c)
}

// parse parses args and runs the selected command.
func parse(args []string) error {
	// .env 不存在时忽略
	_ = godotenv.Load()

	opts := &Options{}
	opts.Markdown.global = opts
	opts.HTML.global = opts
	opts.Render.global = opts
	opts.Split.global = opts

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			return nil
		}
		return err
	}
	return nil
}
