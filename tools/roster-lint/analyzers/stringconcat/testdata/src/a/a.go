package a

func joinTables(tables []string) string {
	var out string
	for _, t := range tables {
		out += t + "," // want `O\(n²\) string concatenation in loop`
	}
	return out
}

func joinNames(names []string) string {
	var out string
	for i := 0; i < len(names); i++ {
		out = out + names[i] + " " // want `O\(n²\) string concatenation in loop`
	}
	return out
}

func lastName(names []string) string {
	var out string
	for _, n := range names {
		out = n + "!"
	}
	return out
}

func total(scores []int) int {
	var sum int
	for _, s := range scores {
		sum += s
	}
	return sum
}
