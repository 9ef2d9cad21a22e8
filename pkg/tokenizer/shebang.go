package tokenizer

import (
	"bytes"
	"path"
	"regexp"
	"strings"
)

const shExecSearchLines = 5

var (
	versionSuffix = regexp.MustCompile(`^(.*?[^\d.]\d+)(?:\.\d+)+$`)
	shExec        = regexp.MustCompile(`\bexec\s+(\w+).+\$0.+\$@`)
)

// Interpreter returns the interpreter named by a leading "#!" line, or "" if
// content has none.
//
// "env" is skipped together with its flags and VAR=value assignments, only
// the last path component is kept, and dotted versions are reduced to their
// major form ("python3.11" becomes "python3"). A "sh" script that re-executes
// itself through another interpreter within its first lines reports that
// interpreter instead.
func Interpreter(content []byte) string {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return ""
	}

	line, _, _ := bytes.Cut(content[2:], []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return ""
	}

	interp := path.Base(fields[0])
	if interp == "env" {
		rest := fields[1:]
		for len(rest) > 0 && (strings.HasPrefix(rest[0], "-") || strings.Contains(rest[0], "=")) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return ""
		}
		interp = path.Base(rest[0])
	}

	if m := versionSuffix.FindStringSubmatch(interp); m != nil {
		interp = m[1]
	}

	if interp == "sh" {
		if m := shExec.FindSubmatch(headLines(content, shExecSearchLines)); m != nil {
			interp = string(m[1])
		}
	}

	return interp
}

func headLines(content []byte, n int) []byte {
	end := 0
	for range n {
		idx := bytes.IndexByte(content[end:], '\n')
		if idx < 0 {
			return content
		}
		end += idx + 1
	}
	return content[:end]
}
