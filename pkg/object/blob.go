package object

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// NewBlob copies data into a new Blob.
func NewBlob(data []byte) *Blob {
	b := &Blob{}
	_ = b.Deserialize(data)
	return b
}

func (b *Blob) Type() ObjectType { return TypeBlob }

// Serialize returns a copy of the blob bytes.
func (b *Blob) Serialize() []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// Deserialize copies data into the blob. It never fails.
func (b *Blob) Deserialize(data []byte) error {
	out := make([]byte, len(data))
	copy(out, data)
	b.Data = out
	return nil
}

func (*Blob) object() {}
