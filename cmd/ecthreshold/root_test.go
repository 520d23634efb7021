package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo", "--mode", "additive", "--seed", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "recovered=\"(5, 12)\"")
	assert.Contains(t, out, "match=true")
}

func TestDemo_Trials(t *testing.T) {
	out, err := execute(t, "demo", "--mode", "additive", "--seed", "trials", "--trials", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "matched=20")
	assert.Contains(t, out, "failed=0")
}

func TestDemo_Quorum(t *testing.T) {
	_, err := execute(t, "demo", "--shares", "1:7", "--seed", "demo")
	require.Error(t, err)
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	ct := filepath.Join(dir, "ct.cbor")
	common := []string{"--mode", "additive", "--seed", "pipeline"}

	out, err := execute(t, append([]string{"encrypt", "--out", ct}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "encrypted")

	_, err = execute(t, append([]string{"partial", "--in", ct, "--out", dir}, common...)...)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "share-1.cbor"))
	assert.FileExists(t, filepath.Join(dir, "share-2.cbor"))

	out, err = execute(t, append([]string{"combine", "--in", ct,
		filepath.Join(dir, "share-1.cbor"), filepath.Join(dir, "share-2.cbor")}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "x1=5")
	assert.Contains(t, out, "x2=12")

	// a single share is below the quorum
	_, err = execute(t, append([]string{"combine", "--in", ct, filepath.Join(dir, "share-1.cbor")}, common...)...)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "3,10", "0x13,5")
	require.NoError(t, err)
	assert.Contains(t, out, "order=28")
	assert.Contains(t, out, "on_curve=true")

	_, err = execute(t, "check", "3,10", "5,11")
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)

	_, err = execute(t, "check", "3")
	assert.Error(t, err)
}
