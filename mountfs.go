package gores

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/afero"
)

const pathSeparator = "/"

var errCrossMountRename = errors.New("filesystem mounts are not compatible to rename a file")

// MountFs routes every call to the filesystem mounted at the longest
// matching path prefix. Paths that match no mount go to the base
// filesystem unchanged. Group directories may point into mounts, for
// example an in-memory overlay for generated resources.
type MountFs struct {
	base   afero.Fs
	mutex  sync.RWMutex
	mounts map[string]afero.Fs
}

func NewMountFs(base afero.Fs) *MountFs {
	return &MountFs{
		base:   base,
		mounts: make(map[string]afero.Fs),
	}
}

func (m *MountFs) Mount(mount afero.Fs, at string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.mounts[mountKey(at)] = mount
}

func (m *MountFs) Unmount(at string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.mounts, mountKey(at))
}

func (m *MountFs) Mounts() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	mounts := make([]string, 0, len(m.mounts))
	for at := range m.mounts {
		mounts = append(mounts, at)
	}
	return mounts
}

func (m *MountFs) Create(name string) (afero.File, error) {
	mount, innerPath := m.findMount(name)
	file, err := mount.Create(innerPath)
	return wrapMountFile(file, name, err)
}

func (m *MountFs) Mkdir(name string, perm os.FileMode) error {
	mount, innerPath := m.findMount(name)
	return mount.Mkdir(innerPath, perm)
}

func (m *MountFs) MkdirAll(path string, perm os.FileMode) error {
	mount, innerPath := m.findMount(path)
	return mount.MkdirAll(innerPath, perm)
}

func (m *MountFs) Open(name string) (afero.File, error) {
	mount, innerPath := m.findMount(name)
	file, err := mount.Open(innerPath)
	return wrapMountFile(file, name, err)
}

func (m *MountFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	mount, innerPath := m.findMount(name)
	file, err := mount.OpenFile(innerPath, flag, perm)
	return wrapMountFile(file, name, err)
}

func (m *MountFs) Remove(name string) error {
	mount, innerPath := m.findMount(name)
	return mount.Remove(innerPath)
}

func (m *MountFs) RemoveAll(path string) error {
	mount, innerPath := m.findMount(path)
	return mount.RemoveAll(innerPath)
}

func (m *MountFs) Rename(oldname, newname string) error {
	oldMount, oldInnerPath := m.findMount(oldname)
	newMount, newInnerPath := m.findMount(newname)

	if oldMount != newMount {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errCrossMountRename}
	}
	return oldMount.Rename(oldInnerPath, newInnerPath)
}

func (m *MountFs) Stat(name string) (os.FileInfo, error) {
	mount, innerPath := m.findMount(name)
	return mount.Stat(innerPath)
}

func (m *MountFs) Name() string {
	return "MountFs"
}

func (m *MountFs) Chmod(name string, mode os.FileMode) error {
	mount, innerPath := m.findMount(name)
	return mount.Chmod(innerPath, mode)
}

func (m *MountFs) Chown(name string, uid, gid int) error {
	mount, innerPath := m.findMount(name)
	return mount.Chown(innerPath, uid, gid)
}

func (m *MountFs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	mount, innerPath := m.findMount(name)
	return mount.Chtimes(innerPath, atime, mtime)
}

func (m *MountFs) findMount(name string) (afero.Fs, string) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if len(m.mounts) == 0 {
		return m.base, name
	}

	key := mountKey(name)
	for prefix := key; ; prefix = path.Dir(prefix) {
		if fs, ok := m.mounts[prefix]; ok {
			return fs, pathSeparator + strings.TrimPrefix(strings.TrimPrefix(key, prefix), pathSeparator)
		}
		if prefix == pathSeparator {
			break
		}
	}
	return m.base, name
}

// mountKey turns any path into the absolute, cleaned, slash separated form
// mounts are keyed by: "assets/ui/" -> "/assets/ui".
func mountKey(name string) string {
	name = filepath.ToSlash(strings.TrimSpace(name))
	return path.Clean(pathSeparator + name)
}

type mountFile struct {
	afero.File
	name string
}

func wrapMountFile(file afero.File, name string, err error) (afero.File, error) {
	if err != nil {
		return nil, err
	}
	return &mountFile{File: file, name: name}, nil
}

func (f *mountFile) Name() string {
	return f.name
}
