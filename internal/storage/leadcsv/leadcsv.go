// Package leadcsv реализует журнал лидов: единый CSV-файл, в который записи
// только дописываются. Чтение, изменение и удаление записей не
// поддерживаются.
package leadcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
)

// Recorder дописывает записи лидов в конец общего файла. Каждая запись —
// одна CSV-строка: поля с разделителем или кавычкой экранируются по
// правилам RFC 4180 (внутренние кавычки удваиваются).
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// New открывает файл журнала в режиме дозаписи, создавая его при
// отсутствии. Существующее содержимое никогда не перезаписывается.
func New(path string) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open leads file %s: %w", path, err)
	}
	return &Recorder{file: file, path: path}, nil
}

// Append сериализует запись и дописывает её одной операцией записи.
// Мьютекс гарантирует, что конкурентные вызовы не перемежают байты
// внутри одной строки. Идемпотентность не обеспечивается: момент и
// кратность записи определяет вызывающая сторона.
func (r *Recorder) Append(rec models.LeadRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var amount string
	if rec.Amount > 0 {
		amount = strconv.FormatInt(rec.Amount, 10)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{
		ts.UTC().Format(time.RFC3339),
		rec.Email,
		rec.Status,
		amount,
		rec.ConfirmationID,
		rec.FailureReason,
		rec.Reference,
	}); err != nil {
		return fmt.Errorf("serialize lead record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("serialize lead record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append lead record to %s: %w", r.path, err)
	}
	return nil
}

// Close закрывает файл журнала.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
