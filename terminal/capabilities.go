package terminal

import (
	"os"
	"strings"
)

// Capabilities describes what the current terminal can display.
type Capabilities struct {
	Name       string
	Unicode    bool
	ColorDepth int // 0, 8, 256, or 24-bit
}

// SupportsColor reports whether any colour output is possible.
func (c Capabilities) SupportsColor() bool {
	return c.ColorDepth > 0
}

// DetectCapabilities inspects the process environment.
func DetectCapabilities() Capabilities {
	return DetectCapabilitiesFrom(os.Getenv)
}

// DetectCapabilitiesFrom inspects an environment through getenv.
func DetectCapabilitiesFrom(getenv func(string) string) Capabilities {
	// Allow override via environment variable
	switch getenv("ISOGRID_TERMINAL_MODE") {
	case "ascii":
		return ForceASCII()
	case "unicode":
		return ForceUnicode()
	}

	term := getenv("TERM")
	caps := Capabilities{Name: term, Unicode: utf8Locale(getenv)}

	switch {
	case getenv("WT_SESSION") != "":
		caps.Name, caps.ColorDepth = "windows-terminal", 24
	case getenv("TERM_PROGRAM") == "iTerm.app":
		caps.Name, caps.ColorDepth = "iterm2", 24
	case getenv("TERM_PROGRAM") == "Apple_Terminal":
		caps.Name, caps.ColorDepth = "terminal.app", 256
	case strings.HasPrefix(term, "xterm-kitty"):
		caps.Name, caps.ColorDepth = "kitty", 24
	case getenv("TMUX") != "":
		caps.Name, caps.ColorDepth = "tmux", 256
	case term == "" || strings.Contains(term, "dumb"):
		caps.ColorDepth = 0
	case strings.Contains(term, "256color"), strings.HasPrefix(term, "xterm"), strings.HasPrefix(term, "screen"):
		caps.ColorDepth = 256
	case strings.Contains(term, "color"):
		caps.ColorDepth = 8
	}

	if ct := getenv("COLORTERM"); caps.ColorDepth > 0 && (ct == "truecolor" || ct == "24bit") {
		caps.ColorDepth = 24
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" {
		caps.ColorDepth = 0
	}
	if caps.Name == "linux" || caps.Name == "dumb" {
		caps.Unicode = false
	}
	return caps
}

// utf8Locale checks if the locale supports UTF-8.
func utf8Locale(getenv func(string) string) bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := strings.ToUpper(getenv(env))
		if value == "" {
			continue
		}
		return strings.Contains(value, "UTF-8") || strings.Contains(value, "UTF8")
	}
	return false
}

// ForceASCII returns capabilities configured for ASCII-only output.
func ForceASCII() Capabilities {
	return Capabilities{Name: "ascii"}
}

// ForceUnicode returns capabilities configured for full Unicode and colour support.
func ForceUnicode() Capabilities {
	return Capabilities{Name: "unicode", Unicode: true, ColorDepth: 24}
}
