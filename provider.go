package gores

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/go-errors/errors"
	"github.com/satori/go.uuid"
	"github.com/spf13/afero"
)

/**
 * The ResourceProvider maps resource groups to base directories and loads
 * raw file data relative to them. A final filename is the group directory
 * and the requested filename joined verbatim, no separator is inserted.
 */
type ResourceProvider struct {
	id           string
	filesystem   afero.Fs
	loader       ResourceLoader
	logger       log.Interface
	mutex        sync.Mutex
	groups       map[string]string
	defaultGroup string
}

func NewResourceProvider(config ProviderConfig) (*ResourceProvider, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.New(err)
	}

	groups := make(map[string]string, len(config.Groups))
	for group, directory := range config.Groups {
		groups[group] = directory
	}

	rp := &ResourceProvider{
		id:           id.String(),
		filesystem:   config.filesystem(),
		loader:       newResourceLoader(config.DecompressZstd),
		groups:       groups,
		defaultGroup: config.DefaultGroup,
	}
	rp.logger = config.logger().WithField("provider", rp.id)
	return rp, nil
}

func (rp *ResourceProvider) ID() string {
	return rp.id
}

func (rp *ResourceProvider) Filesystem() afero.Fs {
	return rp.filesystem
}

func (rp *ResourceProvider) SetDefaultGroup(group string) {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()
	rp.defaultGroup = group
}

func (rp *ResourceProvider) DefaultGroup() string {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()
	return rp.defaultGroup
}

// SetGroupDirectory binds group to directory, replacing any earlier
// binding. The directory is used as given.
func (rp *ResourceProvider) SetGroupDirectory(group, directory string) {
	rp.mutex.Lock()
	rp.groups[group] = directory
	rp.mutex.Unlock()

	rp.logger.WithFields(log.Fields{
		"group":     group,
		"directory": directory,
	}).Debug("ResourceProvider: Set group directory")
}

// GroupDirectory returns the directory bound to group. Asking for an
// unbound group records an empty binding for it, which later shows up
// in LookupGroupDirectory as present. Use LookupGroupDirectory to test
// for a binding without that side effect.
func (rp *ResourceProvider) GroupDirectory(group string) string {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	directory, ok := rp.groups[group]
	if !ok {
		rp.groups[group] = ""
	}
	return directory
}

func (rp *ResourceProvider) LookupGroupDirectory(group string) (string, bool) {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	directory, ok := rp.groups[group]
	return directory, ok
}

func (rp *ResourceProvider) ClearGroupDirectory(group string) {
	rp.mutex.Lock()
	delete(rp.groups, group)
	rp.mutex.Unlock()

	rp.logger.WithField("group", group).Debug("ResourceProvider: Cleared group directory")
}

func (rp *ResourceProvider) FinalFilename(filename, group string) string {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()
	return rp.finalFilename(filename, group)
}

func (rp *ResourceProvider) finalFilename(filename, group string) string {
	return rp.groupDirectory(group) + filename
}

func (rp *ResourceProvider) groupDirectory(group string) string {
	if group == "" {
		group = rp.defaultGroup
	}
	return rp.groups[group]
}

// LoadRawDataContainer reads the whole file named by filename within
// group. The returned container belongs to the caller until it is passed
// to UnloadRawDataContainer.
func (rp *ResourceProvider) LoadRawDataContainer(filename, group string) (*RawDataContainer, error) {
	if filename == "" {
		return nil, newLoadError(InvalidArgument, filename, errors.New("filename supplied for data loading must be valid"))
	}

	path := rp.FinalFilename(filename, group)
	logger := rp.logger.WithFields(log.Fields{
		"group":    group,
		"filename": filename,
		"path":     path,
	})

	data, err := rp.loader.LoadResource(rp.filesystem, path)
	if err != nil {
		logger.WithError(err).Warn("ResourceProvider: Failed to load resource")
		return nil, err
	}

	logger.WithField("size", len(data)).Debug("ResourceProvider: Loaded resource")
	return newRawDataContainer(data), nil
}

func (rp *ResourceProvider) UnloadRawDataContainer(container *RawDataContainer) {
	container.Release()
}

// GroupFileNames lists the regular files directly inside the group
// directory whose names match pattern, using filepath.Match syntax.
func (rp *ResourceProvider) GroupFileNames(pattern, group string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, newLoadError(InvalidArgument, pattern, err)
	}

	rp.mutex.Lock()
	directory := rp.groupDirectory(group)
	rp.mutex.Unlock()

	if directory == "" {
		directory = "."
	}

	infos, err := afero.ReadDir(rp.filesystem, directory)
	if err != nil {
		return nil, newLoadError(NotFound, directory, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		if matched, _ := filepath.Match(pattern, info.Name()); matched {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
