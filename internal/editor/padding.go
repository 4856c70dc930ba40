package editor

// FindPadding returns the leading whitespace of the last line of text,
// with the character offsets where that line and its padding end.
//
// Only spaces and tabs count as padding.
func FindPadding(text string) (padding string, lineStart, paddingEnd int) {
	r := []rune(text)

	i := len(r) - 1
	for i >= 0 && r[i] != '\n' {
		i--
	}
	i++

	j := i
	for j < len(r) && (r[j] == ' ' || r[j] == '\t') {
		j++
	}
	return string(r[i:j]), i, j
}

// runeLen returns the length of s in characters.
func runeLen(s string) int {
	return len([]rune(s))
}

// runeSlice returns s[from:to] with from and to counted in characters and
// clamped to the string.
func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = min(max(from, 0), len(r))
	to = min(max(to, from), len(r))
	return string(r[from:to])
}
