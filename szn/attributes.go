package szn

// Attributes is an insertion-ordered attribute map. Lookup is by name;
// iteration follows first-insertion order so that re-serialization is
// deterministic. Updating an existing key replaces the value but keeps the
// key's original position.
type Attributes struct {
	keys   []string
	values map[string]Value
}

// NewAttributes creates an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]Value)}
}

// Set inserts or updates an attribute. Last write wins.
func (a *Attributes) Set(key string, v Value) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = v
}

// SetDefault inserts the attribute only if the key is absent. Returns true
// if the value was added.
func (a *Attributes) SetDefault(key string, v Value) bool {
	if _, ok := a.values[key]; ok {
		return false
	}
	a.keys = append(a.keys, key)
	a.values[key] = v
	return true
}

// Get returns the value for key and whether it is present.
func (a *Attributes) Get(key string) (Value, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Delete removes key if present and returns its value.
func (a *Attributes) Delete(key string) (Value, bool) {
	v, ok := a.values[key]
	if !ok {
		return Value{}, false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Keys returns the attribute names in insertion order. The returned slice
// is a copy.
func (a *Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Each calls fn for every attribute in insertion order.
func (a *Attributes) Each(fn func(key string, v Value)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// AsMap converts the attributes to plain Go data for serialization. The
// returned map loses ordering; use Keys or Each where order matters.
func (a *Attributes) AsMap() map[string]any {
	out := make(map[string]any, len(a.keys))
	for _, k := range a.keys {
		out[k] = a.values[k].Interface()
	}
	return out
}

// Equal reports whether two attribute maps hold the same keys in the same
// order with equal values.
func (a *Attributes) Equal(other *Attributes) bool {
	if a.Len() != other.Len() {
		return false
	}
	for i, k := range a.keys {
		if other.keys[i] != k {
			return false
		}
		if !a.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}
