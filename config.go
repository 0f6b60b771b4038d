package gores

import (
	"github.com/apex/log"
	"github.com/spf13/afero"
)

type ProviderConfig struct {
	// Filesystem all final filenames are resolved against. Defaults to the
	// operating system filesystem.
	Filesystem afero.Fs

	// DefaultGroup is used whenever a load or listing names no group.
	DefaultGroup string

	// Groups are the initial group directory bindings.
	Groups map[string]string

	Logger log.Interface

	// DecompressZstd makes loads of "*.zst" files return the decoded bytes.
	DecompressZstd bool
}

func (c ProviderConfig) filesystem() afero.Fs {
	if c.Filesystem == nil {
		return afero.NewOsFs()
	}
	return c.Filesystem
}

func (c ProviderConfig) logger() log.Interface {
	if c.Logger == nil {
		return log.Log
	}
	return c.Logger
}
