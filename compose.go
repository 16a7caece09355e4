package bytepack

// The helpers below are the field composition protocol for records written
// by hand: fields are visited in declaration order, each one occupying
// exactly its own Size() bytes, with no padding in between. Record produces
// the same bytes for a struct through reflection.
//
//	func (m Msg) Size() int { return bytepack.SizeOf(m.Kind, m.Len, m.Body) }
//
//	func (m Msg) Pack(buf []byte) error {
//		_, err := bytepack.PackFields(buf, m.Kind, m.Len, m.Body)
//		return err
//	}
//
//	func (Msg) Unpack(buf []byte) (Msg, error) {
//		var m Msg
//		r := bytepack.NewBytesReader(buf)
//		bytepack.Next(r, &m.Kind)
//		bytepack.Next(r, &m.Len)
//		bytepack.Next(r, &m.Body)
//		return m, r.Err()
//	}

// SizeOf returns the sum of the sizes of fields.
func SizeOf(fields ...Sizer) int {
	total := 0
	for _, f := range fields {
		total += f.Size()
	}
	return total
}

// PackFields packs fields back to back into buf and returns the number of
// bytes written. The total size is checked up front, so a failed call
// leaves buf untouched unless a field itself is inconsistent.
func PackFields(buf []byte, fields ...Packer) (int, error) {
	total := 0
	for _, f := range fields {
		total += f.Size()
	}
	if len(buf) < total {
		return 0, &Error{Kind: KindBufferTooSmall, Op: "pack", Need: total, Have: len(buf)}
	}
	w := NewBytesWriter(buf)
	for _, f := range fields {
		w.Put(f)
	}
	return w.Result()
}
