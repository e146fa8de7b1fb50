package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/msibaramdora/visitor-management-api/internal/dto"
	"github.com/msibaramdora/visitor-management-api/internal/models"
	"github.com/msibaramdora/visitor-management-api/internal/services"
	"github.com/stretchr/testify/require"
)

var hexToken32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

func registerInput(employeeID uint64) services.GateRegisterInput {
	return services.GateRegisterInput{
		EmployeeID:      employeeID,
		VisitorName:     "Walk In",
		VisitorEmail:    "walkin@x.com",
		VisitorPhone:    "+15550001",
		VisitorPhotoUrl: "data:image/png;base64,aGVsbG8=",
		VisitDate:       "2024-01-01T10:00",
		Purpose:         "Delivery",
	}
}

func TestVisitHandler_CreateInvite(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)
	cookies := env.loginAs(t, seedEmployeeUsername)

	w := env.request(t, http.MethodPost, "/api/visits/invite", map[string]string{
		"visitorName":  "Jane Doe",
		"visitorEmail": "jane@x.com",
		"visitDate":    "2024-01-01T10:00",
		"purpose":      "Meeting",
	}, cookies)

	require.Equal(t, http.StatusCreated, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, models.StatusInvited, visit.Status)
	require.Equal(t, employee.ID, visit.EmployeeID)
	require.NotNil(t, visit.InviteToken)
	require.Regexp(t, hexToken32, *visit.InviteToken)
	require.Nil(t, visit.VisitorPhone)
	require.Nil(t, visit.VisitorPhotoUrl)
	require.Nil(t, visit.CheckInTime)
	require.Nil(t, visit.CheckOutTime)
}

func TestVisitHandler_CreateInvite_RoleChecks(t *testing.T) {
	env := setupTestEnv(t)

	body := map[string]string{
		"visitorName":  "Jane Doe",
		"visitorEmail": "jane@x.com",
		"visitDate":    "2024-01-01T10:00",
		"purpose":      "Meeting",
	}

	w := env.request(t, http.MethodPost, "/api/visits/invite", body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := env.loginAs(t, seedWatchmanUsername)
	w = env.request(t, http.MethodPost, "/api/visits/invite", body, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestVisitHandler_CreateInvite_MissingFields(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.loginAs(t, seedEmployeeUsername)

	w := env.request(t, http.MethodPost, "/api/visits/invite", map[string]string{
		"visitorName":  "Jane Doe",
		"visitorEmail": "jane@x.com",
	}, cookies)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisitHandler_GetInvite(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)

	created, err := env.visitService.CreateInvite(services.CreateInviteInput{
		EmployeeID:   employee.ID,
		VisitorName:  "Jane Doe",
		VisitorEmail: "jane@x.com",
		VisitDate:    "2024-01-01T10:00",
		Purpose:      "Meeting",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/api/visits/invite/"+*created.InviteToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, created.ID, visit.ID)
}

func TestVisitHandler_GetInvite_UnknownToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/visits/invite/deadbeefdeadbeefdeadbeefdeadbeef", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Not found", errorMessage(t, w))
}

func TestVisitHandler_AcceptInvite(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)

	created, err := env.visitService.CreateInvite(services.CreateInviteInput{
		EmployeeID:   employee.ID,
		VisitorName:  "Jane Doe",
		VisitorEmail: "jane@x.com",
		VisitDate:    "2024-01-01T10:00",
		Purpose:      "Meeting",
	})
	require.NoError(t, err)

	body := map[string]string{
		"visitorName":     "Jane A. Doe",
		"visitorPhone":    "+15550002",
		"visitorPhotoUrl": "data:image/png;base64,aGVsbG8=",
	}

	w := env.request(t, http.MethodPatch, "/api/visits/invite/"+*created.InviteToken, body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, models.StatusPending, visit.Status)
	require.NotNil(t, visit.VisitorName)
	require.Equal(t, "Jane A. Doe", *visit.VisitorName)
	require.NotNil(t, visit.VisitorPhone)
	require.Equal(t, "+15550002", *visit.VisitorPhone)
	require.NotNil(t, visit.VisitorPhotoUrl)
	require.Nil(t, visit.CheckInTime)
	require.Nil(t, visit.CheckOutTime)

	// A consumed invite cannot be accepted again.
	w = env.request(t, http.MethodPatch, "/api/visits/invite/"+*created.InviteToken, body, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestVisitHandler_AcceptInvite_UnknownToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/visits/invite/deadbeefdeadbeefdeadbeefdeadbeef", map[string]string{
		"visitorName":     "Jane Doe",
		"visitorPhone":    "+15550002",
		"visitorPhotoUrl": "data:image/png;base64,aGVsbG8=",
	}, nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	// The failed acceptance must not have created anything.
	visits, err := env.visitService.ListVisits()
	require.NoError(t, err)
	require.Empty(t, visits)
}

func TestVisitHandler_GateRegister(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)

	w := env.request(t, http.MethodPost, "/api/visits/register", map[string]interface{}{
		"employeeId":      employee.ID,
		"visitorName":     "Walk In",
		"visitorEmail":    "walkin@x.com",
		"visitorPhone":    "+15550001",
		"visitorPhotoUrl": "data:image/png;base64,aGVsbG8=",
		"visitDate":       "2024-01-01T10:00",
		"purpose":         "Delivery",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, models.StatusPending, visit.Status)
	require.Nil(t, visit.InviteToken)
	require.Nil(t, visit.CheckInTime)
	require.Nil(t, visit.CheckOutTime)
	require.NotNil(t, visit.VisitorPhotoUrl)
}

func TestVisitHandler_GateRegister_UnknownHost(t *testing.T) {
	env := setupTestEnv(t)
	watchman := env.seedWatchman(t)

	body := map[string]interface{}{
		"employeeId":      uint64(9999),
		"visitorName":     "Walk In",
		"visitorEmail":    "walkin@x.com",
		"visitorPhone":    "+15550001",
		"visitorPhotoUrl": "data:image/png;base64,aGVsbG8=",
		"visitDate":       "2024-01-01T10:00",
		"purpose":         "Delivery",
	}

	w := env.request(t, http.MethodPost, "/api/visits/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// A non-employee host reference is rejected the same way.
	body["employeeId"] = watchman.ID
	w = env.request(t, http.MethodPost, "/api/visits/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisitHandler_UpdateStatus(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)
	cookies := env.loginAs(t, seedEmployeeUsername)

	created, err := env.visitService.GateRegister(registerInput(employee.ID))
	require.NoError(t, err)

	path := fmt.Sprintf("/api/visits/%d/status", created.ID)

	w := env.request(t, http.MethodPatch, path, map[string]string{"status": "approved"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, models.StatusApproved, visit.Status)
	require.Nil(t, visit.CheckInTime)
	require.Nil(t, visit.CheckOutTime)

	// The decision is final: the visit is no longer pending.
	w = env.request(t, http.MethodPatch, path, map[string]string{"status": "rejected"}, cookies)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestVisitHandler_UpdateStatus_RoleChecks(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)

	created, err := env.visitService.GateRegister(registerInput(employee.ID))
	require.NoError(t, err)

	path := fmt.Sprintf("/api/visits/%d/status", created.ID)
	body := map[string]string{"status": "approved"}

	w := env.request(t, http.MethodPatch, path, body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := env.loginAs(t, seedWatchmanUsername)
	w = env.request(t, http.MethodPatch, path, body, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestVisitHandler_UpdateStatus_Invalid(t *testing.T) {
	env := setupTestEnv(t)
	cookies := env.loginAs(t, seedEmployeeUsername)

	w := env.request(t, http.MethodPatch, "/api/visits/9999/status", map[string]string{"status": "approved"}, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodPatch, "/api/visits/9999/status", map[string]string{"status": "active"}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisitHandler_ListVisits(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)
	cookies := env.loginAs(t, seedEmployeeUsername)

	early := registerInput(employee.ID)
	early.VisitDate = "2024-01-01T09:00"
	late := registerInput(employee.ID)
	late.VisitDate = "2024-02-01T09:00"

	_, err := env.visitService.GateRegister(early)
	require.NoError(t, err)
	_, err = env.visitService.GateRegister(late)
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/api/visits", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var visits []dto.VisitDTO
	decodeJSON(t, w, &visits)
	require.Len(t, visits, 2)
	require.True(t, visits[0].VisitDate.After(visits[1].VisitDate), "visits must be ordered by visit date descending")
}

func TestVisitHandler_ListVisits_RequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/visits", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVisitHandler_GetVisit(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.seedEmployee(t)

	created, err := env.visitService.GateRegister(registerInput(employee.ID))
	require.NoError(t, err)

	path := fmt.Sprintf("/api/visits/%d", created.ID)

	cookies := env.loginAs(t, seedWatchmanUsername)
	w := env.request(t, http.MethodGet, path, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var visit dto.VisitDTO
	decodeJSON(t, w, &visit)
	require.Equal(t, created.ID, visit.ID)

	w = env.request(t, http.MethodGet, "/api/visits/9999", nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Gate lookups are watchman-only.
	employeeCookies := env.loginAs(t, seedEmployeeUsername)
	w = env.request(t, http.MethodGet, path, nil, employeeCookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}
