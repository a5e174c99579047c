package schema

import "strings"

// commentLines renders text as "# " prefixed lines.
func commentLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("# "+line, " ")
	}
	return strings.Join(lines, "\n")
}

// commentOut disables every line of a help block. Blank lines become "#" so a
// commented block stays visually grouped.
func commentOut(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "#"
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}
