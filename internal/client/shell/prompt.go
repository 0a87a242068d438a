package shell

import (
	"fmt"
	"strings"
)

// prompt prints label and reads one line. ok is false when input is exhausted.
func (s *Shell) prompt(label string) (line string, ok bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// promptAll asks every label in turn and returns the answers in the same order.
func (s *Shell) promptAll(labels ...string) ([]string, bool) {
	answers := make([]string, 0, len(labels))
	for _, l := range labels {
		a, ok := s.prompt(l)
		if !ok {
			return nil, false
		}
		answers = append(answers, a)
	}
	return answers, true
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
