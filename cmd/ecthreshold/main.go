// Command ecthreshold encrypts a pair of field elements on a short Weierstrass curve and
// decrypts them with a quorum of key share holders.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
