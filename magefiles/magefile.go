//go:build mage

// Package main provides build targets for reqmaster using Mage.
//
// Usage:
//
//	mage build          Compile the reqmaster binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run tests and write coverage.out
//	mage test:scenario  Run the end-to-end CLI tests
//	mage test:storage   Run the backend and object store tests uncached
//	mage test:lint      Run go vet and golangci-lint
//	mage smoke          Build and drive the binary through a link workflow
//	mage clean          Remove build artifacts
//	mage install        Install reqmaster to GOPATH/bin
//	mage stats          Print Go lines of code and documentation word counts
package main
