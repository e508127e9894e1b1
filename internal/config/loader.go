package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"inferd/internal/common/fsutil"
)

// Overflow policies for admission when all generation slots are busy.
const (
	OverflowQueue  = "queue"  // wait in FIFO order up to queue_wait_ms
	OverflowReject = "reject" // fail immediately with 429
)

// Engine backends.
const (
	EngineOllama = "ollama" // talk to an ollama server (pure Go)
	EngineLlama  = "llama"  // in-process llama.cpp (requires the 'llama' build tag)
)

// Config holds process-wide runtime parameters. It is resolved once at
// startup (defaults < file < environment < flags) and never mutated after
// Finalize.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath  string `json:"model_path" yaml:"model_path" toml:"model_path"`
	Engine     string `json:"engine" yaml:"engine" toml:"engine"`
	OllamaHost string `json:"ollama_host" yaml:"ollama_host" toml:"ollama_host"`
	Model      string `json:"model" yaml:"model" toml:"model"`

	CtxSize int `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	Threads int `json:"threads" yaml:"threads" toml:"threads"`

	Concurrency     int    `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	QueueDepth      int    `json:"queue_depth" yaml:"queue_depth" toml:"queue_depth"`
	Overflow        string `json:"overflow" yaml:"overflow" toml:"overflow"`
	QueueWaitMS     int    `json:"queue_wait_ms" yaml:"queue_wait_ms" toml:"queue_wait_ms"`
	RequestTimeoutS int    `json:"request_timeout_s" yaml:"request_timeout_s" toml:"request_timeout_s"`
	MaxPromptChars  int    `json:"max_prompt_chars" yaml:"max_prompt_chars" toml:"max_prompt_chars"`
	DrainTimeoutS   int    `json:"drain_timeout_s" yaml:"drain_timeout_s" toml:"drain_timeout_s"`
	MaxBodyBytes    int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Default returns a Config with all defaults applied. The model path is the
// only required field without one.
func Default() Config {
	return Config{
		Addr:            ":8000",
		Engine:          EngineOllama,
		OllamaHost:      "http://127.0.0.1:11434",
		CtxSize:         4096,
		Concurrency:     1,
		QueueDepth:      32,
		Overflow:        OverflowQueue,
		QueueWaitMS:     10_000,
		RequestTimeoutS: 120,
		MaxPromptChars:  32_768,
		DrainTimeoutS:   15,
		MaxBodyBytes:    1 << 20,
		LogLevel:        "info",
	}
}

// Load reads a configuration file into cfg based on its extension.
// Supports: .yaml/.yml, .json, .toml. Fields absent from the file keep
// their current values.
func Load(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	case ".toml":
		return toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// FromEnv overlays recognized environment variables onto cfg.
func (c *Config) FromEnv() {
	c.ModelPath = envStr("MODEL_PATH", c.ModelPath)
	c.Addr = envStr("INFERD_ADDR", c.Addr)
	c.Engine = envStr("INFERD_ENGINE", c.Engine)
	c.OllamaHost = envStr("INFERD_OLLAMA_HOST", c.OllamaHost)
	c.Model = envStr("INFERD_MODEL", c.Model)
	c.CtxSize = envInt("INFERD_CTX_SIZE", c.CtxSize)
	c.Threads = envInt("INFERD_THREADS", c.Threads)
	c.Concurrency = envInt("INFERD_CONCURRENCY", c.Concurrency)
	c.QueueDepth = envInt("INFERD_QUEUE_DEPTH", c.QueueDepth)
	c.Overflow = envStr("INFERD_OVERFLOW", c.Overflow)
	c.QueueWaitMS = envInt("INFERD_QUEUE_WAIT_MS", c.QueueWaitMS)
	c.RequestTimeoutS = envInt("INFERD_REQUEST_TIMEOUT_S", c.RequestTimeoutS)
	c.MaxPromptChars = envInt("INFERD_MAX_PROMPT_CHARS", c.MaxPromptChars)
	c.DrainTimeoutS = envInt("INFERD_DRAIN_TIMEOUT_S", c.DrainTimeoutS)
	c.LogLevel = envStr("INFERD_LOG_LEVEL", c.LogLevel)
}

// Finalize expands the model path, derives the served model name when unset
// and validates the result. It must be called exactly once after all
// overlays are applied.
func (c *Config) Finalize() error {
	if c.ModelPath != "" {
		p, err := fsutil.ExpandHome(c.ModelPath)
		if err != nil {
			return fmt.Errorf("model_path: %w", err)
		}
		c.ModelPath = p
	}
	if c.Model == "" && c.ModelPath != "" {
		base := filepath.Base(c.ModelPath)
		c.Model = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Engine {
	case EngineLlama:
		if c.ModelPath == "" {
			return fmt.Errorf("MODEL_PATH is required for the %s engine", EngineLlama)
		}
	case EngineOllama:
		if c.Model == "" {
			return fmt.Errorf("a model name is required for the %s engine (set INFERD_MODEL or MODEL_PATH)", EngineOllama)
		}
	default:
		return fmt.Errorf("unknown engine %q (want %s or %s)", c.Engine, EngineOllama, EngineLlama)
	}
	switch c.Overflow {
	case OverflowQueue, OverflowReject:
	default:
		return fmt.Errorf("unknown overflow policy %q (want %s or %s)", c.Overflow, OverflowQueue, OverflowReject)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.QueueDepth < 0 || c.QueueWaitMS < 0 || c.RequestTimeoutS < 0 || c.DrainTimeoutS < 0 {
		return fmt.Errorf("queue/timeout settings must not be negative")
	}
	if c.MaxPromptChars < 1 {
		return fmt.Errorf("max_prompt_chars must be >= 1, got %d", c.MaxPromptChars)
	}
	return nil
}

// QueueWait is the maximum admission wait. Zero means reject immediately.
func (c Config) QueueWait() time.Duration {
	if c.Overflow == OverflowReject {
		return 0
	}
	return time.Duration(c.QueueWaitMS) * time.Millisecond
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}

func (c Config) DrainTimeout() time.Duration {
	return time.Duration(c.DrainTimeoutS) * time.Second
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}
