package render

import "strings"

var slashes = strings.NewReplacer("/", "", `\`, "")

// Sanitize removes every forward and back slash from a node name so it can be
// used as a single path segment. Nothing else changes: "." and ".." pass
// through, and a folder so named resolves to the current or parent directory.
func Sanitize(name string) string {
	return slashes.Replace(name)
}

// Unescape resolves C-style backslash escapes: \a \b \f \n \r \t \v, octal
// \ooo (up to three digits), hex \xhh (up to two digits). Any other escaped
// character stands for itself. A trailing lone backslash is kept.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			out = append(out, c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case 'a':
			out = append(out, '\a')
		case 'v':
			out = append(out, '\v')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'x':
			if i+1 < len(s) && isHex(s[i+1]) {
				n := 0
				for j := 0; j < 2 && i+1 < len(s) && isHex(s[i+1]); j++ {
					i++
					n = n*16 + hexValue(s[i])
				}
				out = append(out, byte(n))
				continue
			}
			out = append(out, 'x')
		default:
			if isOctal(s[i]) {
				n := 0
				for j := 0; j < 3 && i < len(s) && isOctal(s[i]); j++ {
					n = n*8 + int(s[i]-'0')
					i++
				}
				i--
				out = append(out, byte(n))
				continue
			}
			out = append(out, s[i])
		}
	}
	return string(out)
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
