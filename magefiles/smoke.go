// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Exit status validate-links returns when it finds broken or one-sided links.
const exitInconsistent = 3

// Smoke builds the binary and drives it through init, object creation,
// linking and validation against a scratch workspace, once per persistent
// backend.
func Smoke() error {
	mg.Deps(Build)
	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}
	for _, backend := range []string{"files", "sqlite"} {
		if err := smokeBackend(bin, backend); err != nil {
			return fmt.Errorf("smoke %s: %w", backend, err)
		}
	}
	fmt.Println("Smoke passed.")
	return nil
}

func smokeBackend(bin, backend string) error {
	dir, err := os.MkdirTemp("", "reqmaster-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	projects := filepath.Join(dir, "projects")
	global := []string{
		"--config", filepath.Join(dir, "reqmaster.yaml"),
		"--schema-dir", filepath.Join(dir, "config"),
		"--projects-dir", projects,
		"--backend", backend,
	}
	run := func(args ...string) error {
		return sh.RunV(bin, append(args, global...)...)
	}

	steps := [][]string{
		{"init"},
		{"create-project", "--project-name", "smoke"},
		{"create-object", "--project-name", "smoke", "--object-type", "requirement",
			"--object-id", "REQ-1", "--attributes", "Title=Brakes"},
		{"create-object", "--project-name", "smoke", "--object-type", "requirement",
			"--object-id", "REQ-2", "--attributes", "Title=Sensors"},
		{"create-link", "--project-name", "smoke", "--object-id", "REQ-1", "--object-id-2", "REQ-2"},
		{"list-links", "--project-name", "smoke", "--object-id", "REQ-1"},
		{"validate-links", "--project-name", "smoke"},
	}
	for _, step := range steps {
		if err := run(step...); err != nil {
			return err
		}
	}

	// Only the files backend exposes records as plain files to break.
	if backend != "files" {
		return nil
	}
	if err := os.Remove(filepath.Join(projects, "smoke", "objects", "REQ-2.json")); err != nil {
		return err
	}
	err = run("validate-links", "--project-name", "smoke")
	if code := sh.ExitStatus(err); code != exitInconsistent {
		return fmt.Errorf("validate-links after removing REQ-2 exited %d, want %d", code, exitInconsistent)
	}
	return nil
}
