//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

//
// SETS AND SLICES
//

// ToSet - returns a blank map of a slice
func ToSet[T comparable](sl []T) map[T]struct{} {
	m := make(map[T]struct{}, len(sl))
	for i := 0; i < len(sl); i++ {
		m[sl[i]] = struct{}{}
	}
	return m
}

// Unique - return only the unique items from a slice; first appearance wins the position
func Unique[T comparable](s []T) []T {
	// can't use slices.Compact because that only looks as consecutive repeats: [a, a, b, a] -> [a, b, a]
	seen := make(map[T]struct{}, len(s))
	var result []T
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// InvertIndex - map[string]int --> []string where sl[v] = k; the indices must be dense
func InvertIndex(mp map[string]int) []string {
	sl := make([]string, len(mp))
	for k, v := range mp {
		if v >= 0 && v < len(sl) {
			sl[v] = k
		}
	}
	return sl
}
