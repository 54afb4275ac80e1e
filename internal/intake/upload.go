package intake

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Upload is a stored audio file. Close deletes it.
type Upload struct {
	Path     string
	Name     string
	Ext      string
	MimeType string
	Size     int64

	once     sync.Once
	closeErr error
}

// ReadAll returns the stored bytes.
func (u *Upload) ReadAll() ([]byte, error) {
	return os.ReadFile(u.Path)
}

// Close removes the file. It is safe to call more than once.
func (u *Upload) Close() error {
	u.once.Do(func() {
		if err := os.Remove(u.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			u.closeErr = err
		}
	})
	return u.closeErr
}
