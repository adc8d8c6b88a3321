package constant

// SequenceFn is the global function a Lua sequence script must define.
const SequenceFn = "Sequence"

// SequenceScriptTemplate is a Go text/template for scaffolding new Lua sequence scripts.
const SequenceScriptTemplate = `{{ $divider := repeat "-" (plus (len .Name) 16) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
{{ $divider }}

---@alias ref string

--- Builds the ordered list of clip references shown while a transcript
--- segment is active.
-- @param text string Segment text (already trimmed)
-- @param mapping table Character to clip reference table (includes "default")
-- @return ref[] Ordered clip references
function {{ .SequenceFn }}(text, mapping)
	local refs = {}
	for ch in text:upper():gmatch(".") do
		table.insert(refs, mapping[ch] or mapping["default"])
	end
	return refs
end

-- ex: ts=4 sw=4 et filetype=lua
`
