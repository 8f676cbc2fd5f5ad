package engine

// ApplyUse lowers tool durability by loss, floored at zero. An exhausted
// tool is still usable; this never rejects the use.
func ApplyUse(current, loss int) int {
	n := current - loss
	if n < 0 {
		return 0
	}
	return n
}
