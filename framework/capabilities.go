package framework

import "slices"

// Capabilities names the optional features an implementation under test supports.
type Capabilities []string

func (c Capabilities) Has(name string) bool {
	return slices.Contains(c, name)
}

// Missing returns the names in all that c does not have.
func (c Capabilities) Missing(all []string) []string {
	var ret []string
	for _, name := range all {
		if !c.Has(name) {
			ret = append(ret, name)
		}
	}
	return ret
}
