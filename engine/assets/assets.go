package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/vetro/engine/core"
)

type AssetType int

const (
	AssetTypeUnknown AssetType = iota
	AssetTypeScene
	AssetTypeTexture
	AssetTypeShader
)

type AssetInfo struct {
	Path     string
	Type     AssetType
	LastSeen time.Time
}

// AssetManager keeps a registry of the files under the asset root, keyed by
// path relative to it, and keeps the registry current through a recursive
// fsnotify watch. Build steps resolve names to paths through it; the manager
// never parses asset content beyond scene documents.
type AssetManager struct {
	basePath string
	assets   map[string]AssetInfo

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(basePath string) error {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return err
	}
	am.basePath = abs

	if err := am.addRecursive(abs); err != nil {
		return err
	}

	go am.start()

	core.LogInfo("asset manager initialized with base path '%s', %d assets registered", abs, am.Count())
	return nil
}

// addRecursive registers and watches the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return filepath.WalkDir(name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(path)
		}
		am.register(path)
		return nil
	})
}

func (am *AssetManager) start() {
	for {
		select {
		case <-am.done:
			return
		case event, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(event)
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watch error: %s", err.Error())
		}
	}
}

func (am *AssetManager) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if err := am.addRecursive(event.Name); err != nil {
				core.LogError("failed to watch new directory '%s': %s", event.Name, err.Error())
			}
			return
		}
		am.register(event.Name)
	case event.Has(fsnotify.Write):
		am.register(event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		am.unregister(event.Name)
	}
}

func (am *AssetManager) register(path string) {
	rel, err := filepath.Rel(am.basePath, path)
	if err != nil {
		return
	}
	assetType := typeForPath(path)
	if assetType == AssetTypeUnknown {
		return
	}

	am.mutex.Lock()
	am.assets[filepath.ToSlash(rel)] = AssetInfo{
		Path:     path,
		Type:     assetType,
		LastSeen: time.Now(),
	}
	am.mutex.Unlock()

	core.LogDebug("asset registered: %s", rel)
}

func (am *AssetManager) unregister(path string) {
	rel, err := filepath.Rel(am.basePath, path)
	if err != nil {
		return
	}
	am.mutex.Lock()
	delete(am.assets, filepath.ToSlash(rel))
	am.mutex.Unlock()
}

// ResolvePath maps an asset name (path relative to the asset root) to its
// absolute path. Unregistered names resolve to core.ErrAssetNotFound.
func (am *AssetManager) ResolvePath(name string) (string, error) {
	am.mutex.RLock()
	info, exists := am.assets[filepath.ToSlash(name)]
	am.mutex.RUnlock()
	if !exists {
		return "", fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	return info.Path, nil
}

// LoadScene reads and parses the scene document registered under
// scenes/<name>.toml.
func (am *AssetManager) LoadScene(name string) (*SceneDescription, error) {
	rel := fmt.Sprintf("scenes/%s.toml", name)
	path, err := am.ResolvePath(rel)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene '%s': %w", path, err)
	}
	return ParseScene(data, rel)
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return am.fsnotify.Close()
}

func typeForPath(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return AssetTypeScene
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return AssetTypeTexture
	case ".glsl", ".vert", ".frag", ".spv":
		return AssetTypeShader
	default:
		return AssetTypeUnknown
	}
}
