package game

func intListContains(l []int, n int) bool {
	for _, x := range l {
		if n == x {
			return true
		}
	}
	return false
}

func stringListContains(l []string, s string) bool {
	for _, x := range l {
		if s == x {
			return true
		}
	}
	return false
}
