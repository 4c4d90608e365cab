package save

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps each slot as a directory holding the three documents.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// Put writes every document to a temporary file first, and only then renames
// them into place, game.xml last.
func (s *FileStore) Put(ctx context.Context, slot string, docs Documents) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.dir, slot)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{BoardFile, docs.Board},
		{PlayersFile, docs.Players},
		{MetaFile, docs.Meta},
	}

	for _, f := range files {
		tmp := filepath.Join(dir, f.name+".tmp")
		if err := afero.WriteFile(s.fs, tmp, f.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	for _, f := range files {
		tmp := filepath.Join(dir, f.name+".tmp")
		if err := s.fs.Rename(tmp, filepath.Join(dir, f.name)); err != nil {
			return fmt.Errorf("replace %s: %w", f.name, err)
		}
	}

	return nil
}

func (s *FileStore) Get(ctx context.Context, slot string) (Documents, error) {
	if err := ctx.Err(); err != nil {
		return Documents{}, err
	}

	dir := filepath.Join(s.dir, slot)
	read := func(name string) ([]byte, error) {
		data, err := afero.ReadFile(s.fs, filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s has no %s", ErrNotFound, slot, name)
		}
		return data, err
	}

	var docs Documents
	var err error
	if docs.Meta, err = read(MetaFile); err != nil {
		return Documents{}, err
	}
	if docs.Board, err = read(BoardFile); err != nil {
		return Documents{}, err
	}
	if docs.Players, err = read(PlayersFile); err != nil {
		return Documents{}, err
	}
	return docs, nil
}

// List is every slot directory with a game.xml in it.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var slots []string
	for _, fi := range infos {
		if !fi.IsDir() {
			continue
		}
		ok, err := afero.Exists(s.fs, filepath.Join(s.dir, fi.Name(), MetaFile))
		if err != nil {
			return nil, err
		}
		if ok {
			slots = append(slots, fi.Name())
		}
	}
	return sorted(slots), nil
}
