//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	name = "pslist"
)

// Builds a binary for the local platform.
func Build() error {
	if err := os.Mkdir("output", 0700); err != nil && !os.IsExist(err) {
		return fmt.Errorf("failed to create output: %v", err)
	}

	env := make(map[string]string)
	return sh.RunWith(
		env,
		mg.GoCmd(), "build",
		"-o", filepath.Join("output", name),
		"-ldflags=-s -w "+flags(),
		"./bin/")
}

func Linux() error {
	return crossBuild("linux", name+"-linux-amd64")
}

func Freebsd() error {
	return crossBuild("freebsd", name+"-freebsd-amd64")
}

func crossBuild(goos string, output string) error {
	if err := os.Mkdir("output", 0700); err != nil && !os.IsExist(err) {
		return fmt.Errorf("failed to create output: %v", err)
	}

	env := map[string]string{
		"GOOS":        goos,
		"GOARCH":      "amd64",
		"CGO_ENABLED": "0",
	}

	return sh.RunWith(
		env,
		mg.GoCmd(), "build",
		"-o", filepath.Join("output", output),
		"-ldflags=-s -w "+flags(),
		"./bin/")
}

func Test() error {
	return sh.RunV(mg.GoCmd(), "test", "./...")
}

func Clean() error {
	return sh.Rm("output")
}

func flags() string {
	timestamp := time.Now().Format(time.RFC3339)
	return fmt.Sprintf(
		`-X "www.velocidex.com/golang/pslist/config.build_time=%s" `+
			`-X "www.velocidex.com/golang/pslist/config.commit_hash=%s"`,
		timestamp, hash())
}

// hash returns the git hash for the current repo or "" if none.
func hash() string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return hash
}
