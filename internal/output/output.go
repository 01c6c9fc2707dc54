// Package output writes the generated document to disk, optionally
// encrypted for a set of age recipients.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// EncryptedSuffix is appended to the file name when recipients are set.
const EncryptedSuffix = ".age"

var ErrNoRecipients = errors.New("no recipients")

// Writer writes documents to one path.
type Writer struct {
	path       string
	recipients []age.Recipient
}

// New returns a Writer for path. Each recipient must be an age X25519
// public key ("age1..."); with any recipients the document is encrypted
// and written to path + EncryptedSuffix.
func New(path string, recipients []string) (*Writer, error) {
	w := &Writer{path: path}
	for _, r := range recipients {
		rcpt, err := age.ParseX25519Recipient(r)
		if err != nil {
			return nil, fmt.Errorf("recipient %q: %w", r, err)
		}
		w.recipients = append(w.recipients, rcpt)
	}
	if len(w.recipients) > 0 {
		w.path += EncryptedSuffix
	}
	return w, nil
}

// Path is the file Write writes to.
func (w *Writer) Path() string { return w.path }

// Encrypted reports whether documents are encrypted before writing.
func (w *Writer) Encrypted() bool { return len(w.recipients) > 0 }

// Write replaces the output file with doc. The parent directory is created
// if needed.
func (w *Writer) Write(doc string) error {
	data := []byte(doc)
	if w.Encrypted() {
		var err error
		if data, err = encrypt(data, w.recipients...); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return atomicWrite(w.path, data)
}

// encrypt seals plaintext for the recipients as an ASCII-armored age file.
func encrypt(plaintext []byte, recipients ...age.Recipient) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting document: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

// atomicWrite writes data to a temp file in the target directory, syncs
// it, then renames it over path.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dated-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	success = true
	return nil
}
