package naming

import (
	"regexp"
	"strings"
)

// Matcher is a compiled address pattern. Matching is a pure function of the
// candidate path; a Matcher holds no mutable state and is safe to reuse.
type Matcher struct {
	re *regexp.Regexp
	// matchAll is set for the nil pattern, which matches unconditionally.
	matchAll bool
}

// Compile converts an address pattern into a Matcher.
//
// Pattern semantics:
//   - nil pattern (see CompileAll) matches every path.
//   - `*` expands to one or more word characters. It never crosses a
//     hierarchy separator or a namespace colon.
//   - A pattern starting with the separator is absolute and only matches
//     paths anchored at the root.
//   - Any other pattern is relative: it must match the final path segment
//     and its chain of trailing ancestors, ending exactly at the end of the
//     candidate path.
//
// Some examples of the regex a pattern compiles to:
//
//	"name"  -> `(^|.*\|)name$`
//	"name*" -> `(^|.*\|)name[\w]+$`
//	"a|b"   -> `(^|.*\|)a\|b$`
//	"|a|b"  -> `^\|a\|b$`
func Compile(pattern string) *Matcher {
	// Escape everything first, then re-expand the wildcards the escape
	// neutralized. The separator stays escaped: it is structurally
	// significant, not a wildcard boundary. QuoteMeta guarantees the final
	// expression compiles for any input.
	expr := regexp.QuoteMeta(pattern)
	expr = strings.ReplaceAll(expr, `\*`, `[\w]+`)

	if strings.HasPrefix(pattern, Separator) {
		expr = "^" + expr
	} else {
		expr = `(^|.*\|)` + expr
	}
	expr += "$"

	return &Matcher{re: regexp.MustCompile(expr)}
}

// CompileAll returns the matcher for the absent pattern, which matches any
// path unconditionally.
func CompileAll() *Matcher {
	return &Matcher{matchAll: true}
}

// Match reports whether the candidate dagpath satisfies the pattern.
func (m *Matcher) Match(dagpath string) bool {
	if m.matchAll {
		return true
	}
	return m.re.MatchString(dagpath)
}

// String returns the compiled regular expression, mostly for logging.
func (m *Matcher) String() string {
	if m.matchAll {
		return ".*"
	}
	return m.re.String()
}
