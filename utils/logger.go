package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyFile ghi log vào <dir>/app-YYYY-MM-DD.log, sang ngày mới thì mở file mới
type DailyFile struct {
	mu   sync.Mutex
	dir  string
	day  string
	file *os.File
	now  func() time.Time
}

// OpenDailyFile tạo thư mục log nếu chưa có
func OpenDailyFile(dir string) (*DailyFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	d := &DailyFile{dir: dir, now: time.Now}
	if err := d.rotate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) rotate() error {
	day := d.now().Format("2006-01-02")
	if d.file != nil && day == d.day {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(d.dir, fmt.Sprintf("app-%s.log", day)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file, d.day = f, day
	return nil
}

func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotate(); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// LogWriter stderr, thêm file theo ngày khi dir khác rỗng
func LogWriter(dir string) (io.Writer, func() error, error) {
	if dir == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := OpenDailyFile(dir)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stderr, f), f.Close, nil
}
