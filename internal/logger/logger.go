// Package logger builds the process-wide zerolog logger from configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level              string                 `json:"level,omitempty" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format             string                 `json:"format,omitempty" mapstructure:"format" validate:"oneof=json console"`
	OutputTarget       string                 `json:"outputTarget,omitempty" mapstructure:"output_target" validate:"oneof=stdout stderr"`
	TimeField          string                 `json:"timeField,omitempty" mapstructure:"time_field"`
	TimeFormat         string                 `json:"timeFormat,omitempty" mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string                 `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion     string                 `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	Env                string                 `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller         bool                   `json:"withCaller,omitempty" mapstructure:"with_caller"`
	Stacktrace         bool                   `json:"stacktrace,omitempty" mapstructure:"stacktrace"`
	StacktraceMinLevel string                 `json:"stacktraceMinLevel,omitempty" mapstructure:"stacktrace_min_level" validate:"oneof=debug info warn error fatal panic"`
	DebugFile          string                 `json:"debugFile,omitempty" mapstructure:"debug_file"`
	Fields             map[string]interface{} `json:"fields,omitempty" mapstructure:"fields"`
}

var timeFormats = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"unix":        zerolog.TimeFormatUnix,
	"unix_ms":     zerolog.TimeFormatUnixMs,
}

// envProfile is what an environment implies when the config leaves a knob empty.
type envProfile struct {
	level      string
	format     string
	caller     bool
	stacktrace bool
}

var profiles = map[string]envProfile{
	"dev":     {level: "debug", format: "console", caller: true},
	"staging": {level: "info", format: "json", stacktrace: true},
	"prod":    {level: "info", format: "json", stacktrace: true},
}

// New builds the logger on the configured output target.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	return NewWithWriter(cfg, nil)
}

// NewWithWriter is New with the output target replaced by w when w is non-nil.
// The CLI hands in the command's stderr so stdout stays clean for results.
func NewWithWriter(cfg *LoggerConfig, w io.Writer) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFormats[cfg.TimeFormat]
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(sink(cfg, w)).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env)
	if cfg.WithCaller {
		ctx = ctx.Caller()
	}
	if cfg.Stacktrace {
		ctx = ctx.Stack()
	}
	if len(cfg.Fields) > 0 {
		ctx = ctx.Fields(cfg.Fields)
	}
	return ctx.Logger(), nil
}

// Component scopes a child logger the way every layer tags its lines.
func Component(l zerolog.Logger, module, component string) zerolog.Logger {
	return l.With().Str("module", module).Str("component", component).Logger()
}

func sink(cfg *LoggerConfig, w io.Writer) io.Writer {
	out := w
	if out == nil {
		out = os.Stdout
		if cfg.OutputTarget == "stderr" {
			out = os.Stderr
		}
	}
	// console output is a dev convenience; other environments always emit JSON
	if cfg.Format == "console" && cfg.Env == "dev" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	if cfg.Env != "dev" || cfg.Level != "debug" || cfg.DebugFile == "" {
		return out
	}
	// a debug file that cannot be opened is skipped, not fatal
	if err := os.MkdirAll(filepath.Dir(cfg.DebugFile), 0o755); err != nil {
		return out
	}
	f, err := os.OpenFile(cfg.DebugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return out
	}
	return zerolog.MultiLevelWriter(out, f)
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	p, ok := profiles[c.Env]
	if !ok {
		// unknown env is left for validation to reject
		p = profiles["prod"]
	}
	if c.Level == "" {
		c.Level = p.level
	}
	if c.Format == "" {
		c.Format = p.format
	}
	c.WithCaller = c.WithCaller || p.caller
	c.Stacktrace = c.Stacktrace || p.stacktrace

	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if c.StacktraceMinLevel == "" {
		c.StacktraceMinLevel = "error"
	}
	if c.ServiceName == "" {
		c.ServiceName = "product-catalog-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
}
