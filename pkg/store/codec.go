package store

import (
	"encoding/json"
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dmitrymomot/payloadkit/pkg/secrets"
)

// Format is the value encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Option configures a store.
type Option func(*options)

type options struct {
	cipher *secrets.Cipher
	format Format
	prefix string
}

// WithCipher seals every value with c.
func WithCipher(c *secrets.Cipher) Option {
	return func(o *options) {
		o.cipher = c
	}
}

// WithFormat selects the value encoding. Unknown formats fall back to JSON.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithPrefix sets the key prefix of a RedisStore or S3Store.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func newOptions(opts []Option) options {
	o := options{format: FormatJSON}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type codec struct {
	cipher *secrets.Cipher
	format Format
}

func (c codec) encode(k Key, v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch c.format {
	case FormatMsgpack:
		data, err = msgpack.Marshal(v)
	default:
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	if c.cipher == nil {
		return data, nil
	}
	sealed, err := c.cipher.Seal(k.Type, data)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return sealed, nil
}

func (c codec) decode(k Key, data []byte, dst any) error {
	if c.cipher != nil {
		plain, err := c.cipher.Open(k.Type, data)
		if err != nil {
			return errors.Join(ErrDecode, err)
		}
		data = plain
	}
	var err error
	switch c.format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, dst)
	default:
		err = json.Unmarshal(data, dst)
	}
	if err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
