package odurl

// Params is an ordered, key-unique accumulation of query-string parameters.
// Insertion order of keys is preserved so serialization is deterministic;
// overwriting an existing key keeps its original position.
//
// Values are stored and emitted verbatim. Callers that need OData literal
// quoting or percent-encoding apply it before adding the value.
type Params struct {
	keys   []string
	values map[string]string
}

func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Add sets the value for key, overwriting any existing value. The last
// write for a key wins; read-modify-write aggregation (as the order-by
// helper does) is a caller-level convention.
func (p *Params) Add(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored for key and whether the key is present.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in first-seen order. The returned slice is a copy.
func (p *Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p *Params) Len() int {
	return len(p.keys)
}

// Merge copies all entries from other into p, overwriting on key collision.
// other is left unmodified.
func (p *Params) Merge(other *Params) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		p.Add(k, other.values[k])
	}
}

// Clone returns an independent copy; later mutations of either side are
// not observed by the other.
func (p *Params) Clone() *Params {
	out := NewParams()
	out.Merge(p)
	return out
}
