package formattedtext

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/riverfjs/formattedtext/internal/htmlfmt"
)

//go:embed config/default.yaml
var defaultConfigYAML []byte

// DefaultMaxMessageLength 单条消息的默认最大长度（UTF-16 code units）
const DefaultMaxMessageLength = 4096

// Config 解析配置，可从 YAML 文件加载
type Config struct {
	AllowMarkdownLinks        bool   `yaml:"allow_markdown_links"`
	SkipMarkdownPreprocessing bool   `yaml:"skip_markdown_preprocessing"`
	LinkTemplate              string `yaml:"link_template,omitempty"`
	ImageEmojiFallback        bool   `yaml:"image_emoji_fallback"`
	MaxTagDepth               int    `yaml:"max_tag_depth"`
	MaxMessageLength          int    `yaml:"max_message_length"`
}

var (
	defaultConfig     *Config
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the embedded default configuration (singleton).
//
// The returned value is shared and must not be modified.
func DefaultConfig() *Config {
	defaultConfigOnce.Do(func() {
		cfg, err := parseConfig(defaultConfigYAML, builtinConfig())
		if err != nil {
			Logger.Printf("embedded config rejected, using built-in defaults: %v", err)
			cfg = builtinConfig()
		}
		defaultConfig = cfg
	})
	return defaultConfig
}

func builtinConfig() *Config {
	return &Config{
		MaxTagDepth:      htmlfmt.MaxTagDepth,
		MaxMessageLength: DefaultMaxMessageLength,
	}
}

// LoadConfig 从 YAML 文件加载配置，未出现的字段取默认值
//
// path 为空时返回默认配置的副本。
func LoadConfig(path string) (*Config, error) {
	base := *DefaultConfig()
	if path == "" {
		return &base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return parseConfig(data, &base)
}

func parseConfig(data []byte, base *Config) (*Config, error) {
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxTagDepth < 0 {
		return fmt.Errorf("max_tag_depth cannot be negative")
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be positive")
	}
	if c.LinkTemplate != "" {
		if _, err := htmlfmt.MarkdownLinks("", c.LinkTemplate); err != nil {
			return err
		}
	}
	return nil
}
