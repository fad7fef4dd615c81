package headless

import (
	"fmt"
	"regexp"
	"strings"
)

// plainWordRe matches strings that need no quoting for /bin/sh.
var plainWordRe = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// placeholderRe matches {name} placeholders left in a rendered template.
var placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)

// shellQuote quotes s for use as a single /bin/sh word.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if plainWordRe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// BuildCommand renders an agent command template into the argv for a
// detached tmux session. The placeholders {instruction}, {output}, {cwd},
// and {agent} are substituted shell-quoted, and the same values are exported
// unquoted through TMUXDASH_HEADLESS_* so templates can use either form.
// The result always runs under a login shell: ["/bin/sh", "-lc", command].
func BuildCommand(template, instruction, outputPath, workdir, agent string) ([]string, error) {
	known := map[string]bool{
		"{instruction}": true, "{output}": true, "{cwd}": true, "{agent}": true,
	}
	for _, ph := range placeholderRe.FindAllString(template, -1) {
		if !known[ph] {
			return nil, fmt.Errorf("unknown placeholder %s in agent command template", ph)
		}
	}

	rendered := strings.NewReplacer(
		"{instruction}", shellQuote(instruction),
		"{output}", shellQuote(outputPath),
		"{cwd}", shellQuote(workdir),
		"{agent}", shellQuote(agent),
	).Replace(template)

	env := []string{
		"TMUXDASH_HEADLESS_INSTRUCTION=" + shellQuote(instruction),
		"TMUXDASH_HEADLESS_OUTPUT=" + shellQuote(outputPath),
		"TMUXDASH_HEADLESS_CWD=" + shellQuote(workdir),
		"TMUXDASH_HEADLESS_AGENT=" + shellQuote(agent),
	}
	command := strings.TrimSpace(strings.Join(env, " ") + " " + rendered)
	return []string{"/bin/sh", "-lc", command}, nil
}
