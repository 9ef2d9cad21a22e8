package langdetect

import (
	"bytes"
	"regexp"
)

const modelineSearchLines = 5

var (
	emacsModeline = regexp.MustCompile(`-\*-\s*(?:(?:[^;]*?;\s*)*?mode\s*:\s*([\w+.#-]+)|([\w+.#-]+))\s*(?:;[^*]*)?-\*-`)
	vimModeline   = regexp.MustCompile(`(?:^|\s)(?:vim?|ex):\s*(?:set?\s+)?(?:[^:]*?\s)?(?:ft|filetype|syntax)\s*=\s*([\w+.#-]+)`)
)

// modeline resolves an Emacs modeline on the first line or a Vim modeline in
// the first or last five lines to a catalog language.
func (d *Detector) modeline(content []byte) (string, bool) {
	if len(content) == 0 {
		return "", false
	}

	for _, mode := range modelineModes(content) {
		if lang, ok := d.catalog.LanguageByAlias(string(mode)); ok {
			return lang, true
		}
	}
	return "", false
}

// modelineModes returns the mode names declared by modelines in content,
// Emacs first.
func modelineModes(content []byte) [][]byte {
	var modes [][]byte

	first, _, _ := bytes.Cut(content, []byte("\n"))
	if m := emacsModeline.FindSubmatch(first); m != nil {
		if len(m[1]) > 0 {
			modes = append(modes, m[1])
		} else {
			modes = append(modes, m[2])
		}
	}

	for _, line := range vimLines(content) {
		if m := vimModeline.FindSubmatch(line); m != nil {
			modes = append(modes, m[1])
		}
	}
	return modes
}

// vimLines returns the first and last modelineSearchLines lines of content
// without duplicates.
func vimLines(content []byte) [][]byte {
	lines := bytes.Split(bytes.TrimRight(content, "\n"), []byte("\n"))
	if len(lines) <= 2*modelineSearchLines {
		return lines
	}
	out := make([][]byte, 0, 2*modelineSearchLines)
	out = append(out, lines[:modelineSearchLines]...)
	return append(out, lines[len(lines)-modelineSearchLines:]...)
}
