package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/key"
	"github.com/glossa-cli/glossa/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// TypeName returns the string representation of the field's underlying value type.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerSlowRate, 0.5, "Playback speed of the video while a clip sequence runs.\nMust be greater than 0 and less than 1")
	register(key.PlayerGuardRestore, true, "Only restore normal speed when the finishing sequence is still the active one.\nDisable to let every finishing sequence reset the speed")
	register(key.PlayerChapters, true, "Show transcript segments as chapter markers in the player timeline")
	register(key.PlayerOSDCaptions, true, "Show the active segment text on the player OSD")
	register(key.PlayerTermCaptions, false, "Print the active segment text to the terminal when the dashboard is off")
	register(key.AssetsMapping, "", "Path to the character to clip mapping file (JSON).\nDefaults to mapping.json in the config directory")
	register(key.AssetsScript, "", "Optional Lua script that builds clip sequences from segment text")
	register(key.AssetsDefaultDuration, 2.0, "Display duration in seconds for clips without known duration")
	register(key.AssetsBackground, "#000000", "Background color of the clip window")
	register(key.AssetsHeadless, false, "Do not open a clip window, only log clips")
	register(key.TranscriptionEndpoint, "http://localhost:8001/transcribe", "Transcription service endpoint accepting a multipart media upload")
	register(key.TranscriptionModel, "whisper-large-v3-turbo", "Model name sent to the transcription service")
	register(key.TranscriptionTimeout, 300, "Transcription request timeout in seconds")
	register(key.TranscriptionCache, true, "Cache transcripts by media checksum")
	register(key.TranscriptionStrict, false, "Drop transcript segments whose start is not before their end")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when printing the version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
