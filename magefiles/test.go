// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Packages holding the storage backends and the object store built on them.
var storagePkgs = []string{
	"./internal/files/...",
	"./internal/sqlite/...",
	"./internal/memory/...",
	"./internal/objects/...",
}

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package's tests with the race detector. The object
// store's per-project locking is exercised by concurrent tests.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs the tests and writes a coverage profile.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverFile)
}

// Scenario runs the end-to-end CLI tests: the requirement walkthrough,
// export/import and the exit code table.
func (Test) Scenario() error {
	return sh.RunV(binGo, "test", "-count=1", "-v",
		"-run", "TestRequirementScenario|TestExportImport|TestExitCodes|TestSQLiteBackend",
		"./internal/cli/")
}

// Storage runs the backend and object store tests uncached.
func (Test) Storage() error {
	args := append([]string{"test", "-count=1"}, storagePkgs...)
	return sh.RunV(binGo, args...)
}

// Lint runs go vet and then golangci-lint.
func (Test) Lint() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV(binLint, "run", "./...")
}
