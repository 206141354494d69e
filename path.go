package mapjson

import (
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// atField prefixes the path of an EncodeError with an object member. Paths are
// built while the recursion unwinds, so nothing is allocated on success.
func atField(err error, name string) error {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return prefixPath(err, pointerEscaper.Replace(name))
}

func atIndex(err error, i int) error {
	return prefixPath(err, strconv.Itoa(i))
}

func prefixPath(err error, token string) error {
	ee, ok := err.(*EncodeError)
	if !ok {
		return err
	}
	ee.Path = "/" + token + ee.Path
	return err
}

// rooted finishes a path built by atField/atIndex; an empty path is the root.
func rooted(err error) error {
	if ee, ok := err.(*EncodeError); ok && ee.Path == "" {
		ee.Path = "/"
	}
	return err
}
