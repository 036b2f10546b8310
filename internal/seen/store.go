package seen

// Store abstracts persistence of the seen set so the run loop can be
// exercised against a temp file or a fake.
type Store interface {
	Load() (*Set, error)
	Save(*Set) error
}

// FileStore keeps the set in a line-delimited text file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (*Set, error) {
	return Load(f.Path)
}

func (f *FileStore) Save(set *Set) error {
	return Save(f.Path, set)
}
