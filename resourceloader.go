package gores

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

type ResourceLoader interface {
	LoadResource(filesystem afero.Fs, path string) ([]byte, error)
}

type resourceLoader struct {
	decompressZstd bool
}

func newResourceLoader(decompressZstd bool) ResourceLoader {
	return &resourceLoader{decompressZstd: decompressZstd}
}

func (rl *resourceLoader) LoadResource(filesystem afero.Fs, path string) ([]byte, error) {
	file, err := filesystem.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return nil, newLoadError(NotFound, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, newLoadError(IOFailure, path, err)
	}

	buffer := make([]byte, info.Size())
	if _, err := io.ReadFull(file, buffer); err != nil {
		return nil, newLoadError(IOFailure, path, err)
	}

	if rl.decompressZstd && filepath.Ext(path) == ".zst" {
		return rl.decode(path, buffer)
	}
	return buffer, nil
}

func (rl *resourceLoader) decode(path string, compressed []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, newLoadError(IOFailure, path, err)
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, newLoadError(IOFailure, path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
