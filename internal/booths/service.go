package booths

import (
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	qrcode "github.com/skip2/go-qrcode"
)

var (
	ErrBoothNotFound  = errors.New("booth not found")
	ErrWrongCode      = errors.New("wrong QR code scanned, please find the correct booth")
	ErrInvalidCatalog = errors.New("invalid booth catalog")
)

// QRSize is the edge length in pixels of generated booth codes
const QRSize = 256

type Service interface {
	List() []Booth
	Get(id int) (Booth, error)
	Count() int
	// Unlock checks scanned text against the booth's secret by exact equality
	Unlock(id int, scanned string) (Booth, error)
	QRCode(id int) ([]byte, error)
}

type service struct {
	booths []Booth
	byID   map[int]Booth
}

// NewService validates the catalog: ids must be positive and unique, names
// and secret codes non-empty.
func NewService(booths []Booth) (Service, error) {
	if len(booths) == 0 {
		return nil, fmt.Errorf("%w: no booths", ErrInvalidCatalog)
	}

	byID := make(map[int]Booth, len(booths))
	for _, b := range booths {
		if b.ID <= 0 {
			return nil, fmt.Errorf("%w: booth id must be positive, got %d", ErrInvalidCatalog, b.ID)
		}
		if strings.TrimSpace(b.Name) == "" || b.SecretCode == "" {
			return nil, fmt.Errorf("%w: booth %d needs a name and a secret code", ErrInvalidCatalog, b.ID)
		}
		if _, dup := byID[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate booth id %d", ErrInvalidCatalog, b.ID)
		}
		byID[b.ID] = b
	}

	return &service{
		booths: append([]Booth(nil), booths...),
		byID:   byID,
	}, nil
}

// LoadCatalog reads a JSON array of booths from path, or returns the
// built-in booths when path is empty.
func LoadCatalog(path string) ([]Booth, error) {
	if path == "" {
		return DefaultBooths, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read booth catalog: %w", err)
	}

	var booths []Booth
	if err := json.Unmarshal(data, &booths); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return booths, nil
}

func (s *service) List() []Booth {
	return append([]Booth(nil), s.booths...)
}

func (s *service) Get(id int) (Booth, error) {
	b, ok := s.byID[id]
	if !ok {
		return Booth{}, ErrBoothNotFound
	}
	return b, nil
}

func (s *service) Count() int {
	return len(s.booths)
}

func (s *service) Unlock(id int, scanned string) (Booth, error) {
	b, err := s.Get(id)
	if err != nil {
		return Booth{}, err
	}
	if scanned != b.SecretCode {
		return Booth{}, ErrWrongCode
	}
	return b, nil
}

func (s *service) QRCode(id int) ([]byte, error) {
	b, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(b.SecretCode, qrcode.High, QRSize)
	if err != nil {
		return nil, fmt.Errorf("encode booth qr: %w", err)
	}
	return png, nil
}
