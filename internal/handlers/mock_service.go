package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"alumbrado/internal/models"
	"alumbrado/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIngest struct {
	report models.IngestReport
	err    error

	lastFileName string
	lastData     []byte
	calls        int
}

func (m *mockIngest) ImportLuminaireEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	m.calls++
	m.lastFileName = fileName
	m.lastData = data
	return m.report, m.err
}
func (m *mockIngest) ImportChangeEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	m.calls++
	m.lastFileName = fileName
	m.lastData = data
	return m.report, m.err
}
func (m *mockIngest) ImportInventory(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	m.calls++
	m.lastFileName = fileName
	m.lastData = data
	return m.report, m.err
}
func (m *mockIngest) ImportBackup(ctx context.Context, data []byte) (models.IngestReport, error) {
	m.calls++
	m.lastData = data
	return m.report, m.err
}

type mockCatalog struct {
	events    []models.LuminaireEvent
	changes   []models.ChangeEvent
	inventory []models.InventoryItem
	files     []string
	summary   models.DatasetSummary
	backup    models.Backup
	deleted   int64
	err       error

	lastFilter       service.RangeFilter
	lastMunicipality string
	lastDeletedFile  string
	resetCalls       int
}

func (m *mockCatalog) Events(ctx context.Context, f service.RangeFilter) ([]models.LuminaireEvent, error) {
	m.lastFilter = f
	return m.events, m.err
}
func (m *mockCatalog) Changes(ctx context.Context, f service.RangeFilter) ([]models.ChangeEvent, error) {
	m.lastFilter = f
	return m.changes, m.err
}
func (m *mockCatalog) Inventory(ctx context.Context, municipality string) ([]models.InventoryItem, error) {
	m.lastMunicipality = municipality
	return m.inventory, m.err
}
func (m *mockCatalog) Files(ctx context.Context) ([]string, error) {
	return m.files, m.err
}
func (m *mockCatalog) Summary(ctx context.Context) (models.DatasetSummary, error) {
	return m.summary, m.err
}
func (m *mockCatalog) ExportBackup(ctx context.Context) (models.Backup, error) {
	return m.backup, m.err
}
func (m *mockCatalog) DeleteFile(ctx context.Context, fileName string) (int64, error) {
	m.lastDeletedFile = fileName
	return m.deleted, m.err
}
func (m *mockCatalog) Reset(ctx context.Context) error {
	m.resetCalls++
	return m.err
}

// ---- Router helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	return header
}
