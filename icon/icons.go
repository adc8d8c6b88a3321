package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Caption
	Clip
	Video
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "\uf00d",
		plain:   "✗",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "…",
		kaomoji: "(・_・;)",
		squares: "🟦",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "\uf071",
		plain:   "!",
		kaomoji: "(°ロ°)",
		squares: "🟨",
	},
	Caption: {
		emoji:   "💬",
		nerd:    "\uf075",
		plain:   ">",
		kaomoji: "(・o・)",
		squares: "⬜",
	},
	Clip: {
		emoji:   "🤟",
		nerd:    "\uf256",
		plain:   "*",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟪",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "\uf03d",
		plain:   "#",
		kaomoji: "(⌐■_■)",
		squares: "⬛",
	},
}
