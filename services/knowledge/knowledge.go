package knowledge

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const trainingFileName = "training_data.txt"

// welcomeText greets sessions when no training data has been uploaded yet.
const welcomeText = `Welcome to Barbecue Nation Booking Assistant! I can help you with:
1. Making new reservations
2. Updating existing bookings
3. Information about our menu and locations
4. Special offers and timings

To make a booking, just say 'I want to book a table' or 'Make a reservation'.
To update an existing booking, say 'Update my booking' and provide your booking ID.`

// Store reads and appends the persistent training text that grounds
// open-domain answers.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, trainingFileName)}
}

// Load returns the accumulated training text, or the welcome blurb when
// nothing has been persisted yet.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return welcomeText, nil
	}
	if err != nil {
		return "", fmt.Errorf("read training data: %w", err)
	}
	return string(data), nil
}

// AppendSummary adds one summary to the training file, separated from
// earlier content by a blank line.
func (s *Store) AppendSummary(summary string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n\n" + summary); err != nil {
		return fmt.Errorf("append training data: %w", err)
	}
	return nil
}

// ExtractText pulls text out of an uploaded file: PDFs are extracted page by
// page and concatenated, anything else is decoded as raw text.
func ExtractText(filename string, data []byte) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return string(data), nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
