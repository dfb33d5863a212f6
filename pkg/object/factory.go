package object

import "fmt"

// New builds the variant named by objType and deserializes payload into it.
func New(objType ObjectType, payload []byte) (Object, error) {
	var obj Object
	switch objType {
	case TypeBlob:
		obj = &Blob{}
	case TypeTree:
		obj = &Tree{}
	case TypeCommit:
		obj = &Commit{}
	case TypeTag:
		obj = &Tag{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownObjectType, objType)
	}
	if err := obj.Deserialize(payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", objType, err)
	}
	return obj, nil
}
