package graph

// NextID returns the successor of id in bijective base-26 over 'A'..'Z':
// A, B, ..., Z, AA, AB, ..., AZ, BA, ..., ZZ, AAA.
// An empty id yields "A".
func NextID(id string) string {
	if id == "" {
		return "A"
	}
	b := []byte(id)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}
	return "A" + string(b)
}

// ValidID reports whether id is a non-empty run of uppercase ASCII letters.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 'A' || id[i] > 'Z' {
			return false
		}
	}
	return true
}
