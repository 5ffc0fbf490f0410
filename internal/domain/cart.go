package domain

// Cart is the ordered list of variant ids the visitor added, one entry per
// add action.
type Cart struct {
	Items []int `json:"items"`
}

// Add appends a variant id. Duplicates are kept.
func (c *Cart) Add(variantID int) {
	c.Items = append(c.Items, variantID)
}

// Remove drops the first occurrence of variantID and reports whether one was
// found. Removing an absent id is a no-op.
func (c *Cart) Remove(variantID int) bool {
	for i, id := range c.Items {
		if id == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the number of entries.
func (c *Cart) Count() int {
	return len(c.Items)
}

// Snapshot returns a copy of the entries, never nil.
func (c *Cart) Snapshot() []int {
	out := make([]int, len(c.Items))
	copy(out, c.Items)
	return out
}
