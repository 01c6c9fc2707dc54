package output

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
	"filippo.io/age/armor"
)

func TestWrite_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "dated.md")

	w, err := New(path, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Encrypted() || w.Path() != path {
		t.Fatalf("plain writer: path %s, encrypted %v", w.Path(), w.Encrypted())
	}

	for _, doc := range []string{"# first\n", "# second\n"} {
		if err := w.Write(doc); err != nil {
			t.Fatalf("Write: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != doc {
			t.Errorf("file = %q, want %q", got, doc)
		}
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWrite_Encrypted(t *testing.T) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatal(err)
	}
	other, _ := age.GenerateX25519Identity()

	path := filepath.Join(t.TempDir(), "dated.md")
	w, err := New(path, []string{id.Recipient().String(), other.Recipient().String()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Path() != path+EncryptedSuffix {
		t.Fatalf("Path = %s", w.Path())
	}

	doc := "# 🗓️ repeating - dated\n\n- [ ] water plants\n"
	if err := w.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("plaintext file should not exist")
	}

	raw, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), armor.Header) {
		t.Errorf("output is not armored: %q", raw[:min(len(raw), 40)])
	}

	for _, ident := range []age.Identity{id, other} {
		r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), ident)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		got, _ := io.ReadAll(r)
		if string(got) != doc {
			t.Errorf("decrypted = %q, want %q", got, doc)
		}
	}
}

func TestNew_BadRecipient(t *testing.T) {
	if _, err := New("x.md", []string{"not-a-key"}); err == nil {
		t.Fatal("expected error for invalid recipient")
	}
}

func TestEncrypt_NoRecipients(t *testing.T) {
	if _, err := encrypt([]byte("x")); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
}
