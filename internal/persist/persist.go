package persist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"webconfig/internal/store"
	"webconfig/internal/structs"
	"webconfig/internal/util"
)

// File stores parameter values as name=value lines, the identity first.
type File struct {
	fs   afero.Fs
	path string
}

func New(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

func (f *File) Path() string {
	return f.path
}

var (
	valueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	keyEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "=", `\=`)
	unescaper    = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\=`, "=")
)

// Write replaces the file with the identity and every value of s.
func (f *File) Write(s *store.Store) error {
	lines := make([]string, 0, s.Count()+1)
	lines = append(lines, entry(structs.IdentityKey, s.Identity()))
	for i := 0; i < s.Count(); i++ {
		lines = append(lines, entry(s.Name(i), s.Value(i)))
	}

	if err := util.SaveLinesToAfile(f.fs, f.path, lines); err != nil {
		return errors.Wrap(err, "error writing configuration")
	}
	logrus.Debugf("Wrote %d values to %s", s.Count(), f.path)
	return nil
}

// Read loads the file into s. A missing file is first created from the
// current values of s. Lines naming no parameter, and lines without a
// separator, are skipped.
func (f *File) Read(s *store.Store) error {
	exists, err := afero.Exists(f.fs, f.path)
	if err != nil {
		return errors.Wrapf(err, "error checking %s", f.path)
	}
	if !exists {
		logrus.Infof("Configuration file %s not found, writing defaults", f.path)
		if err := f.Write(s); err != nil {
			return err
		}
	}

	file, err := f.fs.Open(f.path)
	if err != nil {
		return errors.Wrapf(err, "error opening %s", f.path)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			apply(s, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "error reading %s", f.path)
		}
	}
}

func apply(s *store.Store, line string) {
	name, value, ok := split(line)
	if !ok {
		return
	}

	if name == structs.IdentityKey {
		s.SetIdentity(value)
		return
	}
	if i, found := s.IndexOf(name); found {
		s.SetValue(i, value)
	}
}

// Remove deletes the file. A file that is already gone is not an error.
func (f *File) Remove() error {
	if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error removing %s", f.path)
	}
	return nil
}

func entry(name, value string) string {
	return keyEscaper.Replace(name) + "=" + valueEscaper.Replace(value)
}

// split cuts a line at its first unescaped '='.
func split(line string) (string, string, bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			return unescaper.Replace(line[:i]), unescaper.Replace(line[i+1:]), true
		}
	}
	return "", "", false
}
