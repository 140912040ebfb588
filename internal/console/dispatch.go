package console

import (
	"regexp"
	"strings"

	"hbnb/internal/logging"
)

// dotCallPattern matches "<verb>(<args>)" after the class name. The argument
// span runs to the last ")" so parentheses inside quoted values survive.
var dotCallPattern = regexp.MustCompile(`^([A-Za-z_]\w*)\((.*)\)$`)

// dotCalls are the verbs reachable as <Class>.<verb>(<args>).
var dotCalls = map[string]bool{
	"all":     true,
	"show":    true,
	"destroy": true,
	"count":   true,
	"update":  true,
}

// dotCall rewrites "<Class>.<verb>(<args>)" into "<verb> <Class> <args>".
// Anything else is unknown syntax.
func (c *Console) dotCall(line string) (bool, error) {
	class, rest, found := strings.Cut(line, ".")
	if found {
		if m := dotCallPattern.FindStringSubmatch(rest); m != nil && dotCalls[m[1]] {
			arg := class + " " + m[2]
			logging.ConsoleDebug("dot call %q -> %s %q", line, m[1], arg)
			return c.commands[m[1]].run(arg)
		}
	}
	c.println("*** Unknown syntax: " + line)
	return false, nil
}
