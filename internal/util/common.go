package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// CreateFileIfNotExist writes content to filePath unless the file is already there.
func CreateFileIfNotExist(fs afero.Fs, filePath string, content []byte) error {
	if _, err := fs.Stat(filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, fmt.Sprintf("error in checking if file exists: %s", filePath))
	}

	if err := fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating directory for: %s", filePath))
	}
	if err := afero.WriteFile(fs, filePath, content, 0644); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating: %s", filePath))
	}
	return nil
}

// SaveLinesToAfile writes one line per entry, each terminated by a newline.
// The lines go to a temporary file first which then replaces filePath, so a
// failed write leaves the previous file untouched.
func SaveLinesToAfile(fs afero.Fs, filePath string, dataList []string) error {
	if err := fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating directory for: %s", filePath))
	}

	tmpPath := filePath + ".tmp"
	file, err := fs.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating file: %s", tmpPath))
	}

	datawriter := bufio.NewWriter(file)
	for _, data := range dataList {
		if _, err := datawriter.WriteString(data + "\n"); err != nil {
			file.Close()
			fs.Remove(tmpPath)
			return errors.Wrap(err, fmt.Sprintf("error in writing file: %s", tmpPath))
		}
	}
	if err := datawriter.Flush(); err != nil {
		file.Close()
		fs.Remove(tmpPath)
		return errors.Wrap(err, fmt.Sprintf("error in writing file: %s", tmpPath))
	}
	if err := file.Close(); err != nil {
		fs.Remove(tmpPath)
		return errors.Wrap(err, fmt.Sprintf("error in closing file: %s", tmpPath))
	}

	if err := fs.Rename(tmpPath, filePath); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in replacing file: %s", filePath))
	}
	return nil
}
