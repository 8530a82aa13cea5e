package features

// Vector is a single feature row: an insertion-ordered mapping from
// feature name to value. A value can be explicitly marked missing,
// which is distinct from the name being absent altogether; the
// predictor treats both as validation failures when reindexing.
type Vector struct {
	names   []string
	values  map[string]float64
	missing map[string]struct{}
}

func NewVector() *Vector {
	return &Vector{
		values:  make(map[string]float64),
		missing: make(map[string]struct{}),
	}
}

// Set records a concrete value for name, clearing any missing mark.
func (v *Vector) Set(name string, value float64) {
	v.track(name)
	v.values[name] = value
	delete(v.missing, name)
}

// SetMissing records that name was computed but has no usable value.
func (v *Vector) SetMissing(name string) {
	v.track(name)
	delete(v.values, name)
	v.missing[name] = struct{}{}
}

// SetBool stores a boolean feature as 0/1.
func (v *Vector) SetBool(name string, value bool) {
	if value {
		v.Set(name, 1)
		return
	}
	v.Set(name, 0)
}

// Value returns the value for name; ok is false when the name is
// absent or marked missing.
func (v *Vector) Value(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Has reports whether name was ever set (with a value or as missing).
func (v *Vector) Has(name string) bool {
	if _, ok := v.values[name]; ok {
		return true
	}
	_, ok := v.missing[name]
	return ok
}

// IsMissing reports whether name was explicitly marked missing.
func (v *Vector) IsMissing(name string) bool {
	_, ok := v.missing[name]
	return ok
}

// Names returns feature names in insertion order.
func (v *Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of named features.
func (v *Vector) Len() int {
	return len(v.names)
}

func (v *Vector) track(name string) {
	if _, ok := v.values[name]; ok {
		return
	}
	if _, ok := v.missing[name]; ok {
		return
	}
	v.names = append(v.names, name)
}
