// Package store persists payload state values.
//
// A value is addressed by a Key: the payload type name plus caller supplied
// path segments. The key is hashed with SHA-256 and spread over a three
// level directory tree so no single directory grows large:
//
//	Key{Type: "Reports", Path: []string{"daily", "2024"}}
//	  -> sha256("Reports-daily-2024") = 3f9a...
//	  -> 3f/9a/c2/3f9ac2....bin
//
// Values are encoded as JSON (or MessagePack with WithFormat) and, when a
// secrets.Cipher is configured, sealed with a key scoped to the payload
// type. Backends:
//
//	FileStore      files under a root directory, written atomically
//	RedisStore     one redis key per value, prefix + hash
//	PostgresStore  rows of the payload_state table (see pkg/pg migrations)
//	MongoStore     one document per value, _id = hash
//	S3Store        objects at prefix/<scatter path>
package store
