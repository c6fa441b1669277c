package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths are resolved against the root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem whose root directory exists.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.entries[root] = newDirEntry(root)
	return mfs
}

func newDirEntry(p string) *memoryEntry {
	return &memoryEntry{info: &memoryFileInfo{
		name:    path.Base(p),
		mode:    0755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}}
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	mfs.putFile(absPath, []byte(content), modTime)
	mfs.ensureDirectoriesExist(absPath)
}

func (mfs *MemoryFileSystem) putFile(absPath string, data []byte, modTime time.Time) {
	buf := make([]byte, len(data))
	copy(buf, data)
	mfs.entries[absPath] = &memoryEntry{
		content: buf,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(buf)),
			mode:    0644,
			modTime: modTime,
		},
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(p string) {
	dir := path.Dir(p)
	if dir == p {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}
	mfs.entries[dir] = newDirEntry(dir)
	mfs.ensureDirectoriesExist(dir)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[mfs.abs(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if entry.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	out := make([]byte, len(entry.content))
	copy(out, entry.content)
	return out, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[mfs.abs(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return entry.info, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	if existing, ok := mfs.entries[absPath]; ok && existing.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	parent, ok := mfs.entries[path.Dir(absPath)]
	if !ok {
		return fmt.Errorf("parent directory does not exist: %s: %w", path.Dir(filePath), fs.ErrNotExist)
	}
	if !parent.info.isDir {
		return fmt.Errorf("parent is not a directory: %s", path.Dir(filePath))
	}

	mfs.putFile(absPath, data, time.Now())
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(dirPath)
	for p := absPath; ; p = path.Dir(p) {
		if entry, ok := mfs.entries[p]; ok && !entry.info.isDir {
			return fmt.Errorf("path is a file, not a directory: %s", p)
		}
		if path.Dir(p) == p {
			break
		}
	}
	if _, ok := mfs.entries[absPath]; !ok {
		mfs.entries[absPath] = newDirEntry(absPath)
	}
	mfs.ensureDirectoriesExist(absPath)
	return nil
}

// Files returns the paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var out []string
	for p, entry := range mfs.entries {
		if !entry.info.isDir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// FilesUnder returns the sorted regular files below dir.
func (mfs *MemoryFileSystem) FilesUnder(dir string) []string {
	prefix := mfs.abs(dir) + "/"
	var out []string
	for _, p := range mfs.Files() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}
