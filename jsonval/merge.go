package jsonval

// Merge reconciles overlay onto base and returns a new tree. Neither input
// is mutated and the result shares no containers with either.
//
// Rules:
//   - object onto object: merged field by field, recursively. Fields present
//     only in base are preserved; fields present only in overlay are added.
//   - anything else in overlay (scalar, array, null) replaces the base value
//     wholesale. Arrays are atomic: no element-wise merging.
//
// Merge is total over well-formed values; it cannot fail.
func Merge(base, overlay Value) Value {
	if base.kind != KindObject || overlay.kind != KindObject {
		return overlay.Clone()
	}
	out := base.Clone()
	for key, over := range overlay.obj {
		if over.kind == KindObject {
			under, ok := out.obj[key]
			if !ok || under.kind != KindObject {
				under = Object(nil)
			}
			out.obj[key] = Merge(under, over)
			continue
		}
		out.obj[key] = over.Clone()
	}
	return out
}
