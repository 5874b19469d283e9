package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessContainsPrefixAndMessage(t *testing.T) {
	result := Success("minted")
	assert.Contains(t, result, "✓")
	assert.Contains(t, result, "minted")
}

func TestWarnContainsPrefixAndMessage(t *testing.T) {
	result := Warn("attestation pending")
	assert.Contains(t, result, "⚠")
	assert.Contains(t, result, "attestation pending")
}

func TestErrContainsPrefixAndMessage(t *testing.T) {
	result := Err("transfer failed")
	assert.Contains(t, result, "✗")
	assert.Contains(t, result, "transfer failed")
}

func TestHintContainsPrefixAndMessage(t *testing.T) {
	result := Hint("usdcli status 0xabc")
	assert.Contains(t, result, "→")
	assert.Contains(t, result, "usdcli status 0xabc")
}

func TestAddrContainsAddress(t *testing.T) {
	result := Addr("0xABCDEF")
	assert.Contains(t, result, "0xABCDEF")
}

func TestTruncateAddrLong(t *testing.T) {
	got := TruncateAddr("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Equal(t, "0x5FbD…0aa3", got)
}

func TestTruncateAddrShortUnchanged(t *testing.T) {
	assert.Equal(t, "0x1234", TruncateAddr("0x1234"))
}
