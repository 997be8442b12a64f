package deeplink

import (
	"fmt"

	hashids "github.com/speps/go-hashids/v2"
)

// Codec turns numeric attraction IDs into the short opaque codes used in
// push-notification deep links and shareable URLs.
type Codec struct {
	h *hashids.HashID
}

func NewCodec(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) (string, error) {
	return c.h.EncodeInt64([]int64{id})
}

func (c *Codec) Decode(code string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed deep link code: %s", code)
	}
	return ids[0], nil
}
