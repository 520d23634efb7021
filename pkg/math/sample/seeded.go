package sample

import (
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

type seeded struct {
	stream *chacha20.Cipher
}

// Seeded returns a deterministic stream of bytes derived from seed.
//
// The key of a ChaCha20 stream is the BLAKE3 hash of the seed. It is only meant for
// reproducible test runs and demos, never for key material.
func Seeded(seed []byte) io.Reader {
	key := blake3.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// key and nonce have the correct length
		panic(err)
	}
	return &seeded{stream: stream}
}

// Read implements io.Reader.
func (s *seeded) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.stream.XORKeyStream(p, p)
	return len(p), nil
}
