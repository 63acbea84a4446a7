package alphabetize

import "strings"

// Unsorted names one child list that is out of order.
type Unsorted struct {
	Path    string   `json:"path"`
	Current []string `json:"current"`
	Want    []string `json:"want"`
}

// Check walks every root without mutating anything and returns each container
// whose children are not in order.
func Check(host Host, caseSensitive bool) []Unsorted {
	var out []Unsorted
	var walk func(c Container, path []string)
	walk = func(c Container, path []string) {
		path = append(path, c.Name())
		children := c.Children()
		names := make([]string, 0, len(children))
		for _, ch := range children {
			names = append(names, ch.Name())
		}
		if !IsSorted(names, caseSensitive) {
			out = append(out, Unsorted{
				Path:    strings.Join(path, "/"),
				Current: names,
				Want:    SortNames(names, caseSensitive),
			})
		}
		for _, ch := range children {
			if ch.Kind == KindContainer && ch.Container != nil {
				walk(ch.Container, path)
			}
		}
	}
	for _, root := range host.Roots() {
		if root != nil {
			walk(root, nil)
		}
	}
	return out
}
