package frontend

// spliceLen returns the length of the line splice at content[i:], or 0.
// A splice is a backslash, optional horizontal whitespace and a newline
// (LF, CRLF or a lone CR).
func spliceLen(content []byte, i int) int {
	if i >= len(content) || content[i] != '\\' {
		return 0
	}
	j := i + 1
	for j < len(content) && isHorizontalSpace(content[j]) {
		j++
	}
	if j >= len(content) {
		return 0
	}
	switch content[j] {
	case '\n':
		return j + 1 - i
	case '\r':
		if j+1 < len(content) && content[j+1] == '\n' {
			return j + 2 - i
		}
		return j + 1 - i
	}
	return 0
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r'
}

// isBlank reports whether content holds only whitespace and line splices.
func isBlank(content []byte) bool {
	for i := 0; i < len(content); {
		if n := spliceLen(content, i); n > 0 {
			i += n
			continue
		}
		if !isHorizontalSpace(content[i]) && !isNewline(content[i]) {
			return false
		}
		i++
	}
	return true
}

// trimBlankSuffix returns the length of content[start:end] without any
// trailing whitespace and line splices.
func trimBlankSuffix(content []byte, start, end int) int {
	n := end
	for n > start {
		c := content[n-1]
		switch {
		case isHorizontalSpace(c) || isNewline(c):
			n--
		case c == '\\' && spliceLen(content, n-1) > 0:
			n--
		default:
			// A splice's whitespace and newline were already stripped, so
			// only its backslash can remain here.
			return n - start
		}
	}
	return 0
}

// hasLineBreak reports whether content[from:to] ends a logical line: it
// holds a newline that is not part of a line splice.
func hasLineBreak(content []byte, from, to int) bool {
	for i := from; i < to; {
		if n := spliceLen(content, i); n > 0 {
			i += n
			continue
		}
		if isNewline(content[i]) {
			return true
		}
		i++
	}
	return false
}

// markLineStarts sets StartOfLine on the first unit of every logical line.
// Units are expected in source order.
func markLineStarts(content []byte, tokens []RawToken) {
	prevEnd := 0
	for i := range tokens {
		tokens[i].StartOfLine = i == 0 || hasLineBreak(content, prevEnd, tokens[i].Offset)
		prevEnd = tokens[i].End()
	}
}
