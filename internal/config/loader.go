package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolves one variable; os.LookupEnv is the production source.
type LookupFunc func(key string) (string, bool)

// Load reads configuration from environment variables, applies defaults and
// validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load over an arbitrary variable source. Every malformed value
// is reported, not just the first.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	d := decoder{lookup: lookup}
	d.fill(reflect.ValueOf(cfg).Elem())
	if err := errors.Join(d.errs...); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// decoder walks a struct and fills tagged fields:
//
//	env      primary variable name
//	envAlt   fallback name, checked when the primary is unset or empty
//	default  value used when neither is set
//	required "true" makes a missing value an error
type decoder struct {
	lookup LookupFunc
	errs   []error
}

func (d *decoder) fill(v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			d.fill(fv)
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}

		raw, ok := d.value(name, field.Tag.Get("envAlt"))
		if !ok {
			if field.Tag.Get("required") == "true" {
				d.errs = append(d.errs, fmt.Errorf("required environment variable %s is not set", name))
				continue
			}
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := assign(fv, raw); err != nil {
			d.errs = append(d.errs, fmt.Errorf("invalid value for %s=%q: %w", name, raw, err))
		}
	}
}

// value returns the first non-empty of name and alt.
func (d *decoder) value(name, alt string) (string, bool) {
	for _, key := range []string{name, alt} {
		if key == "" {
			continue
		}
		if s, ok := d.lookup(key); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// assign parses raw into the field's concrete type.
func assign(fv reflect.Value, raw string) error {
	switch p := fv.Addr().Interface().(type) {
	case *string:
		*p = raw
	case *time.Duration:
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		*p = dur
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		*p = n
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		*p = b
	case *[]string:
		*p = splitList(raw)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// problems collects validation failures.
type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var p problems

	p.check(c.Server.Port > 0 && c.Server.Port <= 65535, "SERVER_PORT (%d) must be 1-65535", c.Server.Port)
	p.check(c.Server.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative")
	p.check(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	p.check(c.Server.WriteTimeout <= 0 || c.Server.WriteTimeout >= c.Report.Timeout,
		"SERVER_WRITE_TIMEOUT (%s) must not be shorter than REPORT_TIMEOUT (%s)", c.Server.WriteTimeout, c.Report.Timeout)

	p.check(c.Upload.MaxFileSize > 0, "UPLOAD_MAX_FILE_SIZE must be positive")
	p.check(c.Upload.MaxConcurrent > 0, "UPLOAD_MAX_CONCURRENT must be positive")
	p.check(c.Upload.MaxWaitTime > 0, "UPLOAD_MAX_WAIT_TIME must be positive")
	p.check(c.Upload.Timeout > 0, "UPLOAD_TIMEOUT must be positive")

	if c.Rate.Enabled {
		p.check(c.Rate.RequestsPerMinute > 0, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
		p.check(c.Rate.UploadLimit > 0, "RATE_LIMIT_UPLOAD must be positive when rate limiting is enabled")
		p.check(c.Rate.ReportLimit > 0, "RATE_LIMIT_REPORT must be positive when rate limiting is enabled")
	}

	p.check(!c.Security.RequireAPIKey || len(c.Security.APIKeys) > 0,
		"REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")

	p.check(c.Report.Timeout > 0, "REPORT_TIMEOUT must be positive")
	p.check(c.Report.CriticalLimit > 0, "REPORT_CRITICAL_LIMIT must be positive")
	if c.Report.Enabled() {
		u, err := url.Parse(c.Report.Endpoint)
		p.check(err == nil && u.Scheme != "" && u.Host != "", "REPORT_ENDPOINT (%q) must be an absolute URL", c.Report.Endpoint)
		p.check(c.Report.Model != "", "REPORT_MODEL is required when REPORT_API_KEY is set")
	}

	p.check(slices.Contains(logLevels, strings.ToLower(c.Logging.Level)),
		"LOG_LEVEL (%q) must be one of: %s", c.Logging.Level, strings.Join(logLevels, ", "))
	p.check(slices.Contains(logFormats, strings.ToLower(c.Logging.Format)),
		"LOG_FORMAT (%q) must be one of: %s", c.Logging.Format, strings.Join(logFormats, ", "))

	if len(p) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(p, "\n  - "))
	}
	return nil
}

// String renders the config for logging with every secret masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {Addr: %q, CORSOrigins: %v}, "+
		"Upload: {MaxFileSize: %d, MaxConcurrent: %d, Timeout: %s}, "+
		"Rate: {Enabled: %v, RequestsPerMinute: %d, Upload: %d, Report: %d}, "+
		"Security: {RequireAPIKey: %v, APIKeys: [%d MASKED]}, "+
		"Report: {Endpoint: %q, Model: %q, APIKey: %s}, "+
		"Logging: {Level: %q, Format: %q}}",
		c.Server.Addr(), c.Server.CORSOrigins,
		c.Upload.MaxFileSize, c.Upload.MaxConcurrent, c.Upload.Timeout,
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.UploadLimit, c.Rate.ReportLimit,
		c.Security.RequireAPIKey, len(c.Security.APIKeys),
		c.Report.Endpoint, c.Report.Model, maskedIfSet(c.Report.APIKey),
		c.Logging.Level, c.Logging.Format)
}

func maskedIfSet(s string) string {
	if s == "" {
		return "[UNSET]"
	}
	return "[MASKED]"
}
