package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnvPrefix is the prefix of keyjar environment variables.
const DefaultEnvPrefix = "KEYJAR_"

// EnvLoader reads prefixed environment variables.
//
// Mapped variables go to their configured path. Any other prefixed
// variable is converted by name: KEYJAR_EDITOR_CATCH_TAB becomes
// editor.catchTab.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix includes its trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":        "logging.level",
		prefix + "LOG_FILE":         "logging.file",
		prefix + "TAB":              "editor.tab",
		prefix + "HIGHLIGHTER":      "highlight.name",
		prefix + "LUA_SCRIPT":       "highlight.script",
		prefix + "HISTORY_CAPACITY": "history.capacity",
	}
}

// AddMapping routes envVar to a config path.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load implements Loader. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
			if path == "" {
				continue
			}
		}
		Set(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts KEYJAR_EDITOR_CATCH_TAB to editor.catchTab. Names
// without a setting part are skipped.
func (l *EnvLoader) envToPath(name string) string {
	parts := strings.Split(strings.TrimPrefix(name, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(parts[0]))
	sb.WriteByte('.')
	sb.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(strings.ToLower(p[1:]))
	}
	return sb.String()
}

// parseValue guesses the type of an environment value: bool words, then
// integers, floats and durations. Everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return s
}
