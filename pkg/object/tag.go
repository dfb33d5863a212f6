package object

// Tag is an annotated tag: a KVLM header map with object, type, tag and
// tagger headers, followed by the tag message.
type Tag struct {
	headers *KVLM
}

// NewTag builds an annotated tag pointing at target.
func NewTag(target Hash, targetType ObjectType, name, tagger, message string) *Tag {
	kv := NewKVLM()
	kv.Add("object", string(target))
	kv.Add("type", string(targetType))
	kv.Add("tag", name)
	kv.Add("tagger", tagger)
	kv.SetMessage(message)
	return &Tag{headers: kv}
}

func (t *Tag) Type() ObjectType { return TypeTag }

func (t *Tag) Serialize() []byte {
	if t.headers == nil {
		return NewKVLM().Bytes()
	}
	return t.headers.Bytes()
}

func (t *Tag) Deserialize(data []byte) error {
	kv, err := ParseKVLM(data)
	if err != nil {
		return err
	}
	t.headers = kv
	return nil
}

// Headers exposes the underlying header map.
func (t *Tag) Headers() *KVLM {
	if t.headers == nil {
		t.headers = NewKVLM()
	}
	return t.headers
}

// Target returns the hash of the tagged object.
func (t *Tag) Target() Hash {
	v, _ := t.Headers().Get("object")
	return Hash(v)
}

// TargetType returns the declared type of the tagged object.
func (t *Tag) TargetType() ObjectType {
	v, _ := t.Headers().Get("type")
	return ObjectType(v)
}

func (t *Tag) Name() string {
	v, _ := t.Headers().Get("tag")
	return v
}

func (t *Tag) Tagger() string {
	v, _ := t.Headers().Get("tagger")
	return v
}

func (t *Tag) Message() string { return t.Headers().Message() }

func (*Tag) object() {}
