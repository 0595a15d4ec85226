package advisor

import (
	"fmt"
	"strings"
)

// CommandSet configures how a recommendation is turned into a runnable
// command line.
type CommandSet struct {
	// Invoker prefixes concatenated action fragments in legacy mode,
	// e.g. "make".
	Invoker string `json:"invoker" mapstructure:"invoker"`

	// UnifiedCommand is the single sync command used in unified mode,
	// e.g. "devenv sync".
	UnifiedCommand string `json:"unifiedCommand" mapstructure:"unifiedCommand"`

	// BootstrapCommand provisions the legacy environment; shown as a hint
	// when the environment needs bootstrapping.
	BootstrapCommand string `json:"bootstrapCommand" mapstructure:"bootstrapCommand"`
}

// Advisory is a rendered recommendation. Raw is the executable command
// string; Display is the decorated text shown to the user. The zero value
// is the "no action needed" sentinel.
type Advisory struct {
	Raw     string `json:"raw"`
	Display string `json:"-"`
}

// Empty reports whether the advisory is the no-action sentinel.
func (a Advisory) Empty() bool {
	return a.Raw == ""
}

// RenderAdvisory composes the command for a recommendation under the given
// tooling mode. An empty recommendation yields the no-action sentinel
// regardless of mode. In unified mode the raw command is the unified sync
// command; otherwise it is the invoker followed by each action fragment in
// recommendation order. Pure formatting: never fails.
func RenderAdvisory(rec Recommendation, mode ToolingMode, cmds CommandSet) Advisory {
	if len(rec) == 0 {
		return Advisory{}
	}

	var raw string
	if mode == ToolingUnified {
		raw = cmds.UnifiedCommand
	} else {
		parts := make([]string, 0, len(rec)+1)
		parts = append(parts, cmds.Invoker)
		for _, action := range rec {
			parts = append(parts, string(action))
		}
		raw = strings.Join(parts, " ")
	}

	return Advisory{
		Raw:     raw,
		Display: renderDisplay(raw, mode, cmds),
	}
}

// renderDisplay builds the colorized notice around the raw command.
func renderDisplay(raw string, mode ToolingMode, cmds CommandSet) string {
	var b strings.Builder

	b.WriteString("\n\033[33mDependencies or migrations changed upstream.\033[0m\n")
	if mode == ToolingNeedsBootstrap && cmds.BootstrapCommand != "" {
		b.WriteString(fmt.Sprintf("\033[31mNo development environment found. Bootstrap it first:\033[0m\n    $ %s\n", cmds.BootstrapCommand))
	}
	b.WriteString(fmt.Sprintf("To sync your environment, run:\n    \033[1m$ %s\033[0m\n", raw))

	return b.String()
}
