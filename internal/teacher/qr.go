package teacher

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/skip2/go-qrcode"
)

const (
	CodePrefix = "QR-"
	QRSize     = 256
)

// Renderer turns a string into a PNG QR code.
type Renderer interface {
	PNG(content string, size int) ([]byte, error)
}

type qrRenderer struct{}

func (qrRenderer) PNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}

type IDGen interface {
	New() (string, error)
}

// ulidGen shares one monotonic entropy source so codes minted in the same
// millisecond still sort in creation order.
type ulidGen struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newULIDGen() *ulidGen {
	return &ulidGen{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ulidGen) New() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return CodePrefix + id.String(), nil
}

func dataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
