package metadata

// Overlay writes every entry of src into dst, adding keys dst does not have.
// It is used for override fragments, before the theme allow-list applies.
func Overlay(dst, src *Map) {
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		dst.Set(k, v)
	}
}

// Merge returns a copy of theme with values from doc applied.
//
// Theme keys form an allow-list: a doc key the theme does not declare is
// dropped without notice. Result order follows the theme declaration.
func Merge(theme, doc *Map) *Map {
	out := theme.Clone()
	for _, k := range doc.Keys() {
		if !out.Has(k) {
			continue
		}
		v, _ := doc.Get(k)
		out.Set(k, v)
	}
	return out
}

// Dropped lists the doc keys Merge would discard, in doc order.
func Dropped(theme, doc *Map) []string {
	var out []string
	for _, k := range doc.Keys() {
		if !theme.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
