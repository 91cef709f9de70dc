package ports

// Watcher monitors a corpus file or directory and reports changes so that a
// clustering run can be repeated. The adapter (fsnotify) debounces bursts of
// events (editors and exporters often write a file several times in a row).
// Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring path. When path is a directory it is watched
	// recursively. onChange is called with the absolute path of each changed
	// file and may be invoked from any goroutine. Returns an error if the
	// path doesn't exist or permissions are insufficient.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
