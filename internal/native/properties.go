package native

import (
	"errors"
	"fmt"

	"gstplayer/internal/propdiff"
)

// ErrorReporter receives property application failures.
type ErrorReporter func(source, message, debugInfo string)

// ApplyProperties applies a JSON property document to pipeline. Top-level
// members name elements; their members name properties. A nested object
// under a property is applied to the same element. Null values are
// skipped. Missing elements and failed sets are reported and do not stop
// the remaining assignments. It returns the number of properties set, or an
// error when the document cannot be parsed.
func ApplyProperties(pipeline Pipeline, document string, report ErrorReporter) (int, error) {
	if report == nil {
		report = func(string, string, string) {}
	}
	tree, err := propdiff.ParseJSON([]byte(document))
	if err != nil {
		return 0, fmt.Errorf("apply properties: %w", err)
	}

	applied := 0
	for _, name := range tree.Keys() {
		props, ok := tree[name].(propdiff.Tree)
		if !ok {
			if tree[name] != nil {
				report("pipeline", fmt.Sprintf("properties for element %s must be an object", name), "")
			}
			continue
		}
		element, err := pipeline.Element(name)
		if err != nil {
			if errors.Is(err, ErrElementNotFound) {
				report("pipeline", fmt.Sprintf("element %s does not exist", name), "")
			} else {
				report("pipeline", fmt.Sprintf("lookup element %s failed", name), err.Error())
			}
			continue
		}
		applied += applyElement(element, props, report)
	}
	return applied, nil
}

func applyElement(element Element, props propdiff.Tree, report ErrorReporter) int {
	applied := 0
	for _, key := range props.Keys() {
		switch value := props[key].(type) {
		case nil:
		case propdiff.Tree:
			applied += applyElement(element, value, report)
		default:
			if err := element.SetProperty(key, value); err != nil {
				report(element.Name(), fmt.Sprintf("failed to set property %s", key), err.Error())
				continue
			}
			applied++
		}
	}
	return applied
}
