package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

const (
	// MaxImageBytes 头像上限 5MiB
	MaxImageBytes = 5 << 20

	MsgTooLarge = "Max size of file is 5MB"
	MsgBadType  = "Only .jpg , .png , .webp formats are allowed"
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Store 把上传文件落到可对外回源的目录（public/customers），
// 返回相对 web 路径。同名文件直接覆盖，不做去重。
type Store struct {
	Dir    string // 磁盘目录，如 ./public/customers
	Prefix string // 返回路径前缀，如 /customers
}

func NewStore(dir, prefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir, Prefix: prefix}, nil
}

// empty size<=1 视为"没有文件"
func empty(fh *multipart.FileHeader) bool { return fh == nil || fh.Size <= 1 }

// Check 返回违规消息，空串表示通过；没有文件也算通过
func (s *Store) Check(fh *multipart.FileHeader) string {
	if empty(fh) {
		return ""
	}
	if fh.Size > MaxImageBytes {
		return MsgTooLarge
	}
	if _, ok := allowedImageTypes[fh.Header.Get("Content-Type")]; !ok {
		return MsgBadType
	}
	return ""
}

// Save 写盘并返回 /<prefix>/<filename>；没有文件时返回空路径
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if empty(fh) {
		return "", nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := filepath.Base(fh.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return s.Prefix + "/" + name, nil
}
