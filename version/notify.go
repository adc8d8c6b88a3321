package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/style"
)

// Notify writes an update notice to w when a release newer than the running version exists.
// Lookup failures are logged and otherwise ignored.
func Notify(ctx context.Context, w io.Writer) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	latest, err := Latest(ctx)
	if err != nil {
		log.Warn("version check: ", err)
		return
	}

	if newer, err := Newer(latest, constant.Version); err != nil || !newer {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}

// Newer reports whether candidate is a strictly greater version than current.
func Newer(candidate, current string) (bool, error) {
	comp, err := Compare(candidate, current)
	if err != nil {
		return false, err
	}

	return comp > 0, nil
}
