// Package secrets encrypts persisted payload state.
//
// A Cipher holds one 32-byte master key. Every Seal and Open call derives a
// per-scope key from it with HKDF-SHA-256, so values written for one payload
// type cannot be opened under another type's scope. The derived key drives
// AES-256-GCM; the random nonce is prepended to the ciphertext.
//
//	key, _ := secrets.GenerateKey()
//	c, err := secrets.New(key)
//	if err != nil {
//		return err
//	}
//	sealed, err := c.Seal("Reports", []byte(`{"last":42}`))
//	plain, err := c.Open("Reports", sealed)
//
// Master keys are usually configured as hex or base64 strings and decoded
// with ParseKey.
//
// All errors wrap one of the package sentinels; match them with errors.Is.
package secrets
