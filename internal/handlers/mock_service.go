package handlers

import (
	"context"
	"net/http"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
	"icd_controller/internal/service"

	"github.com/gin-gonic/gin"
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

type mockDevice struct {
	activateApplied   bool
	activateErr       error
	deactivateApplied bool
	deactivateErr     error
	limitApplied      bool
	limitErr          error
	impulseApplied    bool
	impulseErr        error
	genSwitchErr      error
	monSwitchErr      error
	genState          icd.GeneratorState
	monState          icd.MonitorState
	tickReport        icd.TickReport
	tickErr           error

	activateCalls   int
	deactivateCalls int
	tickCalls       int
	lastLimit       int
	lastImpulse     int
	genOnCalls      int
	genOffCalls     int
	monOnCalls      int
	monOffCalls     int
}

func (m *mockDevice) RestoreFromLast(ctx context.Context) error { return nil }
func (m *mockDevice) Activate(ctx context.Context) (bool, error) {
	m.activateCalls++
	return m.activateApplied, m.activateErr
}
func (m *mockDevice) Deactivate(ctx context.Context) (bool, error) {
	m.deactivateCalls++
	return m.deactivateApplied, m.deactivateErr
}
func (m *mockDevice) SetTachyLimit(ctx context.Context, limit int) (bool, error) {
	m.lastLimit = limit
	return m.limitApplied, m.limitErr
}
func (m *mockDevice) GeneratorOn(ctx context.Context) error {
	m.genOnCalls++
	return m.genSwitchErr
}
func (m *mockDevice) GeneratorOff(ctx context.Context) error {
	m.genOffCalls++
	return m.genSwitchErr
}
func (m *mockDevice) GeneratorSetImpulse(ctx context.Context, impulse int) (bool, error) {
	m.lastImpulse = impulse
	return m.impulseApplied, m.impulseErr
}
func (m *mockDevice) GeneratorStatus() icd.GeneratorState {
	return m.genState
}
func (m *mockDevice) MonitorOn(ctx context.Context) error {
	m.monOnCalls++
	return m.monSwitchErr
}
func (m *mockDevice) MonitorOff(ctx context.Context) error {
	m.monOffCalls++
	return m.monSwitchErr
}
func (m *mockDevice) MonitorStatus() icd.MonitorState {
	return m.monState
}
func (m *mockDevice) Tick(ctx context.Context) (icd.TickReport, error) {
	m.tickCalls++
	return m.tickReport, m.tickErr
}

type mockMonitoring struct {
	state models.DeviceState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DeviceState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
