package propdiff

// Diff returns the keys of previous whose value differs in current.
//
// Only keys of previous are visited. For each one:
//   - sequence: a missing or null current value reads as an empty sequence; when
//     the two are not set-equal the current value is reported.
//   - tree: a missing current value reads as an empty tree; the nested
//     delta is reported when it is non-empty.
//   - scalar: the current value is reported when it differs. A missing
//     current scalar always differs and is reported as nil.
//
// The result is a new tree; neither input is modified.
func Diff(current, previous Tree) Tree {
	delta := Tree{}
	for key, prevValue := range previous {
		curValue, present := current[key]

		switch KindOf(prevValue) {
		case KindSequence:
			prevSeq, _ := asSequence(prevValue)
			if !present || curValue == nil {
				curValue = []any{}
			}
			curSeq, ok := asSequence(curValue)
			if !ok || !SetEqual(curSeq, prevSeq) {
				delta[key] = cloneValue(curValue)
			}

		case KindTree:
			prevTree, _ := asTree(prevValue)
			curTree, _ := asTree(curValue)
			if sub := Diff(curTree, prevTree); len(sub) > 0 {
				delta[key] = sub
			}

		default:
			if !present || !Equal(curValue, prevValue) {
				delta[key] = cloneValue(curValue)
			}
		}
	}
	return delta
}

// Changed reports whether Diff(current, previous) would be non-empty.
func Changed(current, previous Tree) bool {
	return len(Diff(current, previous)) > 0
}
