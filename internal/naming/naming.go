package naming

import (
	"regexp"
	"strings"
)

// Separator is the hierarchy separator used in dagpaths.
const Separator = "|"

// reservedNodeNames are names the host scene claims for itself; user nodes
// may never take them.
var reservedNodeNames = map[string]struct{}{
	"root":  {},
	"world": {},
	"time":  {},
}

// validNameRegex matches a well-formed node name: no leading digit, word
// characters and namespace colons only.
var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:]*$`)

// invalidNameCharsRegex matches every character a node name cannot contain,
// plus any leading digits.
var invalidNameCharsRegex = regexp.MustCompile(`^[0-9]+|[^A-Za-z0-9_:]`)

// IsValidNodeName determines if a name is usable for a node. A node name
// cannot be empty, cannot start with a digit, cannot contain characters
// outside `[A-Za-z0-9_:]` and cannot be reserved.
func IsValidNodeName(name string) bool {
	if !validNameRegex.MatchString(name) {
		return false
	}
	_, reserved := reservedNodeNames[name]
	return !reserved
}

// ConformNodeName strips invalid characters and leading digits from a name,
// returning the closest valid name. The result may be empty.
func ConformNodeName(name string) string {
	return invalidNameCharsRegex.ReplaceAllString(name, "")
}

// Join combines a parent dagpath (or bare name) with a child name. The
// result is absolute iff the left operand was absolute.
func Join(left, right string) string {
	dagpath := strings.Trim(left, Separator) + Separator + strings.Trim(right, Separator)
	if strings.HasPrefix(left, Separator) {
		dagpath = Separator + dagpath
	}
	return dagpath
}

// SplitAttr splits a `node.attribute` address into its node and attribute
// parts at the final dot. The second return is empty when the address has
// no attribute part.
func SplitAttr(dagpath string) (string, string) {
	i := strings.LastIndex(dagpath, ".")
	if i < 0 {
		return dagpath, ""
	}
	return dagpath[:i], dagpath[i+1:]
}
