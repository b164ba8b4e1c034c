package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// IDSize is the length of generated record ids. Seeded rows carry shorter
// hand-picked ids; ids are opaque text either way.
const IDSize = 32

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func NanoID() string {
	return NanoIDSize(IDSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = IDSize
	}

	return gonanoid.MustGenerate(idAlphabet, size)
}

// PrefixedID returns prefix followed by a random id of the given size, for
// references people read, like "demo_txn_3fK9...".
func PrefixedID(prefix string, size int) string {
	return prefix + NanoIDSize(size)
}
