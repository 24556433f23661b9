// Package shellcmd converts between a single shell command line and a
// program plus argument list, using conventional POSIX shell quoting.
package shellcmd

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Split breaks line into a program and its arguments. Lines with unbalanced
// quotes fall back to whitespace splitting so a damaged file still yields
// something runnable.
func Split(line string) (program string, args []string) {
	words, err := shellquote.Split(line)
	if err != nil {
		words = strings.Fields(line)
	}
	if len(words) == 0 {
		return "", nil
	}
	return words[0], words[1:]
}

// Join quotes program and args into one command line.
func Join(program string, args []string) string {
	if program == "" && len(args) == 0 {
		return ""
	}
	return shellquote.Join(append([]string{program}, args...)...)
}

// Quote quotes a single word.
func Quote(word string) string {
	return shellquote.Join(word)
}
