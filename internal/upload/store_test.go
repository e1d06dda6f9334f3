package upload

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
)

func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="profileImage"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["profileImage"][0]
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "/customers")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestCheck(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name string
		fh   *multipart.FileHeader
		want string
	}{
		{"nil file", nil, ""},
		{"zero-size file", &multipart.FileHeader{Filename: "a.png", Size: 0}, ""},
		{"one-byte file treated as absent", &multipart.FileHeader{Filename: "a.png", Size: 1}, ""},
		{
			"oversized image",
			&multipart.FileHeader{
				Filename: "big.png",
				Size:     6 << 20,
				Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
			},
			MsgTooLarge,
		},
		{
			"gif rejected",
			&multipart.FileHeader{
				Filename: "anim.gif",
				Size:     1024,
				Header:   textproto.MIMEHeader{"Content-Type": []string{"image/gif"}},
			},
			MsgBadType,
		},
		{
			"png accepted",
			&multipart.FileHeader{
				Filename: "ok.png",
				Size:     1024,
				Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
			},
			"",
		},
		{
			"webp accepted",
			&multipart.FileHeader{
				Filename: "ok.webp",
				Size:     1024,
				Header:   textproto.MIMEHeader{"Content-Type": []string{"image/webp"}},
			},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Check(tt.fh); got != tt.want {
				t.Errorf("Check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveWritesFileAndReturnsWebPath(t *testing.T) {
	s := newTestStore(t)
	data := bytes.Repeat([]byte{0x89}, 1024)
	fh := makeFileHeader(t, "avatar.png", "image/png", data)

	path, err := s.Save(fh)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != "/customers/avatar.png" {
		t.Errorf("path = %q, want /customers/avatar.png", path)
	}

	b, err := os.ReadFile(filepath.Join(s.Dir, "avatar.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(b, data) {
		t.Errorf("stored bytes differ: %d vs %d", len(b), len(data))
	}
}

func TestSaveNoFile(t *testing.T) {
	s := newTestStore(t)

	path, err := s.Save(nil)
	if err != nil || path != "" {
		t.Errorf("nil file: path=%q err=%v", path, err)
	}
}

func TestSaveOverwritesSameName(t *testing.T) {
	s := newTestStore(t)

	first := makeFileHeader(t, "same.png", "image/png", []byte("first-version-bytes"))
	if _, err := s.Save(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := makeFileHeader(t, "same.png", "image/png", []byte("second"))
	if _, err := s.Save(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(s.Dir, "same.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "second" {
		t.Errorf("expected overwrite, got %q", b)
	}
}

func TestSaveStripsDirectoryFromFilename(t *testing.T) {
	s := newTestStore(t)
	fh := makeFileHeader(t, "evil.png", "image/png", []byte("data-bytes"))
	fh.Filename = "../../evil.png"

	path, err := s.Save(fh)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != "/customers/evil.png" {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "evil.png")); err != nil {
		t.Errorf("file not written inside store dir: %v", err)
	}
}
