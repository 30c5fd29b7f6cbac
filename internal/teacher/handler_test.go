package teacher

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter(svc *Service) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r.Group("/api"), svc)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateHandler(t *testing.T) {
	svc, mock, _ := newTestService(t)
	r := newTestRouter(svc)

	mock.ExpectExec(insertQ).WillReturnResult(sqlmock.NewResult(5, 1))
	w := do(r, http.MethodPost, "/api/guru", `{"nama":"Bu Sari","kode_qr":"QR-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, in := range []string{`{`, `{"nama":"Bu Sari"}`, `{"kode_qr":"QR-01"}`} {
		w := do(r, http.MethodPost, "/api/guru", in)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", in, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["code"] != string(CodeInvalidArgument) || body["error"] != "Nama dan kode_qr wajib diisi" {
			t.Fatalf("%s: unexpected error body %v", in, body)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetHandler(t *testing.T) {
	svc, mock, _ := newTestService(t)
	r := newTestRouter(svc)

	mock.ExpectQuery(selectQ).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nama", "kode_qr"}).AddRow(int64(1), "A", "QR-A"),
	)
	w := do(r, http.MethodGet, "/api/guru/1/qr", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got TeacherResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.KodeQR != "QR-A" {
		t.Fatalf("unexpected teacher %+v", got)
	}

	for _, path := range []string{"/api/guru/abc/qr", "/api/guru/0/qr", "/api/guru/x/qr.png"} {
		if w := do(r, http.MethodGet, path, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestQRImageHandler(t *testing.T) {
	svc, mock, _ := newTestService(t)
	r := newTestRouter(svc)

	mock.ExpectQuery(selectQ).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nama", "kode_qr"}).AddRow(int64(2), "B", "QR-B"),
	)
	w := do(r, http.MethodGet, "/api/guru/2/qr.png", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestGenerateQRHandler(t *testing.T) {
	svc, _, _ := newTestService(t)
	r := newTestRouter(svc)

	w := do(r, http.MethodGet, "/api/generate-qr", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["kode_qr"] != "QR-TEST" || got["qr_image"] == "" {
		t.Fatalf("unexpected body %v", got)
	}
}
