// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback - these keys control the main video player and the rate coupling of clip runs.
const (
	PlayerSlowRate     = "player.slow_rate"
	PlayerGuardRestore = "player.guard_restore"
	PlayerChapters     = "player.chapters"
	PlayerOSDCaptions  = "player.osd_captions"
	PlayerTermCaptions = "player.terminal_captions"
)

// Clip Assets - these keys govern how animation clips are resolved and displayed.
const (
	AssetsMapping         = "assets.mapping"
	AssetsScript          = "assets.script"
	AssetsDefaultDuration = "assets.default_duration"
	AssetsBackground      = "assets.background"
	AssetsHeadless        = "assets.headless"
)

// Transcription - these keys configure the external transcription service and its results.
const (
	TranscriptionEndpoint = "transcription.endpoint"
	TranscriptionModel    = "transcription.model"
	TranscriptionTimeout  = "transcription.timeout"
	TranscriptionCache    = "transcription.cache"
	TranscriptionStrict   = "transcription.strict"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
