package win32

// maxCursorHides bounds the hide loop in case another component keeps
// showing the cursor.
const maxCursorHides = 16

// hideCursor lowers the cursor display count until it goes negative and
// returns how many decrements that took. show has ShowCursor's contract: it
// returns the new display count.
func hideCursor(show func(bool) int32) int {
	n := 0
	for n < maxCursorHides {
		n++
		if show(false) < 0 {
			break
		}
	}
	return n
}

// restoreCursor undoes n decrements made by hideCursor.
func restoreCursor(show func(bool) int32, n int) {
	for ; n > 0; n-- {
		show(true)
	}
}
