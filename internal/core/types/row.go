package types

// Row maps column ids to typed values.
type Row map[string]Value

// Get returns the value of column id, or the null of kind k when the row has
// no value for it.
func (r Row) Get(id string, k Kind) Value {
	if v, ok := r[id]; ok && v.kind == k {
		return v
	}
	return Null(k)
}
