package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"alumbrado/internal/models"
	"alumbrado/internal/service"
)

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestImportFailures_Success(t *testing.T) {
	ingest := &mockIngest{report: models.IngestReport{
		Kind: models.KindLuminaireEvents, FileName: "eventos.csv",
		TotalRows: 3, Accepted: 2, Duplicates: 1,
	}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Ingest:        ingest,
	}
	r := newTestRouter(s)

	csv := []byte("a;b\n1;2\n")
	body, contentType := multipartUpload(t, "eventos.csv", csv)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/failures", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var report models.IngestReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Accepted != 2 || report.Duplicates != 1 {
		t.Fatalf("report: %+v", report)
	}
	if ingest.lastFileName != "eventos.csv" || !bytes.Equal(ingest.lastData, csv) {
		t.Fatalf("service received %q / %q", ingest.lastFileName, ingest.lastData)
	}
}

func TestImport_MissingFileField(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Ingest:        &mockIngest{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/changes", bytes.NewBufferString("not multipart"))
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestImport_ServiceErrorIsUnprocessable(t *testing.T) {
	ingest := &mockIngest{err: errors.New("file is not valid UTF-8 text")}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Ingest:        ingest,
	}
	r := newTestRouter(s)

	body, contentType := multipartUpload(t, "bad.csv", []byte{0xff})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/inventory", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestImport_RequiresAuth(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Ingest:        &mockIngest{},
	}
	r := newTestRouter(s)

	body, contentType := multipartUpload(t, "eventos.csv", []byte("a;b\n1;2\n"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/failures", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestImportBackup_PassesRawBody(t *testing.T) {
	ingest := &mockIngest{report: models.IngestReport{Kind: models.KindBackup, Accepted: 5}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Ingest:        ingest,
	}
	r := newTestRouter(s)

	payload := []byte(`{"metadata":{"fileNames":["a.csv"]}}`)
	body, contentType := multipartUpload(t, "backup.json", payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/backup", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if !bytes.Equal(ingest.lastData, payload) {
		t.Fatalf("service received %q", ingest.lastData)
	}
}
