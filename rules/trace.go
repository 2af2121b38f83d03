package rules

import (
	"strconv"
	"strings"
)

// LogTrace records the path an Execute call took through a rule tree, plus
// any custom diagnostic messages produced along the way (spec §4.6: "a
// per-execution log trace ... must allow a user, reading the exception, to
// reproduce the exact branch taken").
type LogTrace struct {
	lines []string
}

func (t *LogTrace) record(line string) {
	t.lines = append(t.lines, line)
}

// Lines returns the recorded trace lines, in order.
func (t *LogTrace) Lines() []string {
	return append([]string(nil), t.lines...)
}

func (t *LogTrace) String() string {
	var b strings.Builder
	b.WriteString("rule trace:")
	for i, line := range t.lines {
		b.WriteString("\n ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(": ")
		b.WriteString(line)
	}
	return b.String()
}
