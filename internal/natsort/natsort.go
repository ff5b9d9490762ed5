// Package natsort implements natural-order string comparison: embedded
// runs of digits compare by numeric magnitude instead of character by
// character, so `node2` sorts before `node10`. Non-digit runs compare
// case-insensitively; full ties fall back to ordinary lexicographic order
// for determinism.
package natsort

import "strings"

// Compare returns -1, 0 or 1 ordering a relative to b naturally.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ai, bj := a[i], b[j]
		if isDigit(ai) && isDigit(bj) {
			aNum, aNext := digitRun(a, i)
			bNum, bNext := digitRun(b, j)
			if c := compareDigits(aNum, bNum); c != 0 {
				return c
			}
			i, j = aNext, bNext
			continue
		}
		al, bl := lower(ai), lower(bj)
		if al != bl {
			if al < bl {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	// Natural tie (e.g. case-only or leading-zero differences): plain
	// lexicographic order keeps the result deterministic.
	return strings.Compare(a, b)
}

// Less reports whether a orders before b naturally.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// digitRun returns the digit run starting at position i and the position
// just past it.
func digitRun(s string, i int) (string, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[start:i], i
}

// compareDigits compares two digit runs by numeric magnitude without
// converting to integers, so arbitrarily long runs cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
