package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/logging"
)

// DirMode is the mode of directories created in the target project.
const DirMode fs.FileMode = 0o755

// NewOS returns the operating system filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// ReadIfExists reads a regular file. A missing file is reported through
// the boolean rather than as an error.
func ReadIfExists(afs afero.Fs, name string) ([]byte, bool, error) {
	info, err := afs.Stat(name)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", name).WithDetail("path", name)
	}
	if info.IsDir() {
		return nil, false, errors.Newf(errors.ErrFileRead, "%s is a directory", name).WithDetail("path", name)
	}

	data, err := afero.ReadFile(afs, name)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", name).WithDetail("path", name)
	}
	return data, true, nil
}

// WriteFile writes data to name and sets its permission bits to perm,
// also when the file already existed with another mode.
func WriteFile(afs afero.Fs, name string, data []byte, perm fs.FileMode) error {
	if err := afero.WriteFile(afs, name, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", name).WithDetail("path", name)
	}
	return Chmod(afs, name, perm)
}

// Chmod sets the permission bits of name, ignoring any other mode bits
// in perm.
func Chmod(afs afero.Fs, name string, perm fs.FileMode) error {
	if err := afs.Chmod(name, perm.Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot chmod %s", name).WithDetail("path", name)
	}
	return nil
}

// MkdirAll creates dir and its parents with DirMode.
func MkdirAll(afs afero.Fs, dir string) error {
	if err := afs.MkdirAll(dir, DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir).WithDetail("path", dir)
	}
	return nil
}

// Tree lists the directories and regular files below root as
// slash-separated paths relative to root, each in lexical order. root
// itself is not listed. Symlinks to regular files are listed as files
// and read through; other symlinks are skipped.
func Tree(afs afero.Fs, root string) (dirs, files []string, err error) {
	logger := logging.GetLogger("filesystem")
	err = afero.Walk(afs, root, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		switch {
		case info.IsDir():
			dirs = append(dirs, rel)
		case info.Mode().IsRegular():
			files = append(files, rel)
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := afs.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				logger.Debug().Err(err).Str("path", rel).Msg("skipping symlink that does not point to a regular file")
				return nil
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFileRead, "cannot walk %s", root).WithDetail("path", root)
	}
	return dirs, files, nil
}
