//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Ingest loads knowledge/entries/*.yaml into the SQLite knowledge store.
func Ingest() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "kb", "ingest")
}

// Chat starts the interactive FAQ console on the built-in knowledge base.
func Chat() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "chat")
}
