package a

import "strings"

func sameName(a, b string) bool {
	return strings.EqualFold(a, b) // want `strings.EqualFold does not fold Turkish letters`
}

func shout(name string) string {
	return strings.ToUpper(name) // want `strings.ToUpper does not fold Turkish letters`
}

func format(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
