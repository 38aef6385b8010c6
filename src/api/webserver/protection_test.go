package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := fingerprint("projet de loi anticorruption, version 1")
	b := fingerprint("projet de loi anticorruption, version 1")
	c := fingerprint("projet de loi anticorruption, version 2")

	assert.Equal(t, a, b, "fingerprint must be deterministic")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16, "xxhash64 hex is 16 chars")
	assert.NotEmpty(t, fingerprint(""))
}
