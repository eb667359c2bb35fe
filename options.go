package formattedtext

import "github.com/riverfjs/formattedtext/internal/htmlfmt"

// ParseOptions holds options for HTML parsing.
type ParseOptions struct {
	AllowMarkdownLinks        bool
	SkipMarkdownPreprocessing bool
	LinkTemplate              string
	ImageEmojiFallback        bool
	MaxTagDepth               int
}

// Option is a function that configures ParseOptions.
type Option func(*ParseOptions)

// WithMarkdownLinks sets whether [text](link) is turned into a link.
func WithMarkdownLinks(enable bool) Option {
	return func(opts *ParseOptions) {
		opts.AllowMarkdownLinks = enable
	}
}

// WithSkipMarkdown disables markdown pre-processing; the HTML is parsed as is.
func WithSkipMarkdown(skip bool) Option {
	return func(opts *ParseOptions) {
		opts.SkipMarkdownPreprocessing = skip
	}
}

// WithLinkTemplate sets the bare-link pattern used for markdown links.
func WithLinkTemplate(template string) Option {
	return func(opts *ParseOptions) {
		opts.LinkTemplate = template
	}
}

// WithImageEmojiFallback sets whether [<img alt="x">] is rewritten to [x].
func WithImageEmojiFallback(enable bool) Option {
	return func(opts *ParseOptions) {
		opts.ImageEmojiFallback = enable
	}
}

// WithMaxTagDepth sets the maximum DOM depth the extractor descends into.
func WithMaxTagDepth(depth int) Option {
	return func(opts *ParseOptions) {
		opts.MaxTagDepth = depth
	}
}

// WithConfig replaces all options with the values of config.
func WithConfig(config *Config) Option {
	return func(opts *ParseOptions) {
		if config != nil {
			*opts = optionsFromConfig(config)
		}
	}
}

func optionsFromConfig(config *Config) ParseOptions {
	return ParseOptions{
		AllowMarkdownLinks:        config.AllowMarkdownLinks,
		SkipMarkdownPreprocessing: config.SkipMarkdownPreprocessing,
		LinkTemplate:              config.LinkTemplate,
		ImageEmojiFallback:        config.ImageEmojiFallback,
		MaxTagDepth:               config.MaxTagDepth,
	}
}

// applyOptions applies the given options on top of DefaultConfig.
func applyOptions(opts ...Option) *ParseOptions {
	options := optionsFromConfig(DefaultConfig())
	for _, opt := range opts {
		opt(&options)
	}
	return &options
}

func (o *ParseOptions) htmlOptions() htmlfmt.Options {
	return htmlfmt.Options{
		AllowMarkdownLinks:        o.AllowMarkdownLinks,
		SkipMarkdownPreprocessing: o.SkipMarkdownPreprocessing,
		LinkTemplate:              o.LinkTemplate,
		ImageEmojiFallback:        o.ImageEmojiFallback,
		MaxTagDepth:               o.MaxTagDepth,
	}
}
