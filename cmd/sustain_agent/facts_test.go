package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactsDeleteCommand_BadID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "facts", "delete", "notanumber")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "non-negative integer")
}

func TestFactsAddCommand_MissingText(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "facts", "add")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "requires at least 1 arg")
}
