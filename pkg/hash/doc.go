// Package hash provides content-addressing helpers built on SHA-256.
//
// Unlike an HMAC signer, Digest carries no secret: it exists purely to
// derive a stable, collision-resistant cache key from arbitrary byte
// content.
package hash
