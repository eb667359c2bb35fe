// Command fmtconv converts between markdown, HTML and (text, entities) JSON.
//
//	fmtconv markdown notes.md
//	echo '<b>hi</b> **there**' | fmtconv html --links
//	fmtconv render message.json
//	fmtconv split -n 4096 message.json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/riverfjs/formattedtext"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fmtconv: ")

	if err := parse(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func runMarkdown(opts *Options, cmd *MarkdownCmd) error {
	src, err := readInput(cmd.Args.File)
	if err != nil {
		return err
	}

	ft := formattedtext.ParseMarkdown(string(src))
	if cmd.HTML {
		_, err = fmt.Fprintln(stdout, formattedtext.ToHTML(ft))
		return err
	}
	return writeJSON(opts, ft)
}

func runHTML(opts *Options, cmd *HTMLCmd) error {
	config, err := formattedtext.LoadConfig(opts.Config)
	if err != nil {
		return err
	}
	src, err := readInput(cmd.Args.File)
	if err != nil {
		return err
	}

	parseOpts := []formattedtext.Option{formattedtext.WithConfig(config)}
	if cmd.Links {
		parseOpts = append(parseOpts, formattedtext.WithMarkdownLinks(true))
	}
	if cmd.SkipMarkdown {
		parseOpts = append(parseOpts, formattedtext.WithSkipMarkdown(true))
	}
	if cmd.EmojiFallback {
		parseOpts = append(parseOpts, formattedtext.WithImageEmojiFallback(true))
	}
	if cmd.MaxDepth > 0 {
		parseOpts = append(parseOpts, formattedtext.WithMaxTagDepth(cmd.MaxDepth))
	}

	ft, err := formattedtext.ParseHTML(string(src), parseOpts...)
	if err != nil {
		return fmt.Errorf("failed to parse html: %w", err)
	}
	return writeJSON(opts, ft)
}

func runRender(opts *Options, cmd *RenderCmd) error {
	ft, err := readFormatted(cmd.Args.File)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, formattedtext.ToHTML(ft))
	return err
}

func runSplit(opts *Options, cmd *SplitCmd) error {
	config, err := formattedtext.LoadConfig(opts.Config)
	if err != nil {
		return err
	}
	if cmd.MaxLength > 0 {
		config.MaxMessageLength = cmd.MaxLength
	}

	ft, err := readFormatted(cmd.Args.File)
	if err != nil {
		return err
	}
	return writeJSON(opts, formattedtext.Split(ft, config))
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

func readFormatted(path string) (formattedtext.FormattedText, error) {
	data, err := readInput(path)
	if err != nil {
		return formattedtext.FormattedText{}, err
	}
	var ft formattedtext.FormattedText
	if err := json.Unmarshal(data, &ft); err != nil {
		return formattedtext.FormattedText{}, fmt.Errorf("failed to decode formatted text: %w", err)
	}
	return ft, nil
}

func writeJSON(opts *Options, v any) error {
	var (
		out []byte
		err error
	)
	if prettyOutput(opts) {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// prettyOutput 终端输出默认缩进
func prettyOutput(opts *Options) bool {
	if opts.Pretty {
		return true
	}
	f, ok := stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
