package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two dotted versions. Missing parts count as zero, so 1.2 equals 1.2.0.
func Compare(a, b string) (int, error) {
	as, err := parts(a)
	if err != nil {
		return 0, err
	}

	bs, err := parts(b)
	if err != nil {
		return 0, err
	}

	for i := 0; i < max(len(as), len(bs)); i++ {
		x, y := at(as, i), at(bs, i)
		switch {
		case x > y:
			return 1, nil
		case x < y:
			return -1, nil
		}
	}
	return 0, nil
}

func parts(v string) ([]int, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	// pre-release and build suffixes do not take part in ordering
	v, _, _ = strings.Cut(v, "-")
	v, _, _ = strings.Cut(v, "+")

	fields := strings.Split(v, ".")
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q", v)
		}
		out[i] = n
	}
	return out, nil
}

func at(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
