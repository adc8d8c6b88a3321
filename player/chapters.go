package player

import (
	"fmt"

	"github.com/glossa-cli/glossa/segment"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

const chapterTitleWidth = 32

// Chapter is one marker on the mpv timeline.
type Chapter struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// ChaptersOf marks the start of every segment, titled with its text.
func ChaptersOf(segments []segment.Segment) []Chapter {
	return lo.Map(segments, func(s segment.Segment, i int) Chapter {
		title := truncate.StringWithTail(s.Text, chapterTitleWidth, "…")
		if title == "" {
			title = fmt.Sprintf("Segment %d", i+1)
		}
		return Chapter{Title: title, Time: s.Start}
	})
}

// SetChapters replaces the chapter markers of the loaded file.
func (m *MPV) SetChapters(chapters []Chapter) error {
	list := lo.Map(chapters, func(c Chapter, _ int) map[string]interface{} {
		return map[string]interface{}{"title": c.Title, "time": c.Time}
	})
	_, err := m.sendCommand([]interface{}{"set_property", "chapter-list", list})
	return err
}
