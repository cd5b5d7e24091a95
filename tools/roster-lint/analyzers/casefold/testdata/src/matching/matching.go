package matching

import "strings"

func fold(name string) string {
	return strings.ToUpper(name)
}
