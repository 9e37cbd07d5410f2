package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
	appErrors "github.com/noah-isme/library-duty-api/pkg/errors"
)

type dutySchedulerMock struct {
	captured dto.GenerateDutyScheduleRequest
	result   *dto.GenerateDutyScheduleResult
	view     *dto.DutyScheduleView
	cached   bool
	audit    *dto.DutyScheduleAudit
	err      error
	term     string
}

func (m *dutySchedulerMock) Generate(_ context.Context, req dto.GenerateDutyScheduleRequest) (*dto.GenerateDutyScheduleResult, error) {
	m.captured = req
	return m.result, m.err
}

func (m *dutySchedulerMock) Get(_ context.Context, term string) (*dto.DutyScheduleView, bool, error) {
	m.term = term
	return m.view, m.cached, m.err
}

func (m *dutySchedulerMock) Audit(_ context.Context, term string) (*dto.DutyScheduleAudit, error) {
	m.term = term
	return m.audit, m.err
}

type envelopeBody struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func dutyRouter(mock *dutySchedulerMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &DutyScheduleHandler{service: mock}
	router := gin.New()
	router.POST("/duty-schedules/generate", h.Generate)
	router.GET("/duty-schedules/:term", h.Get)
	router.GET("/duty-schedules/:term/audit", h.Audit)
	return router
}

func performJSON(router *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, envelopeBody) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var env envelopeBody
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestDutyScheduleHandlerGenerateSuccess(t *testing.T) {
	mock := &dutySchedulerMock{result: &dto.GenerateDutyScheduleResult{
		Success: true,
		Term:    models.TermFirst,
		Stats:   &dto.DutyScheduleStats{TotalAssignments: 8},
	}}
	w, env := performJSON(dutyRouter(mock), http.MethodPost, "/duty-schedules/generate", []byte(`{"term":"FIRST_TERM","forceRegenerate":true}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FIRST_TERM", mock.captured.Term)
	assert.True(t, mock.captured.ForceRegenerate)
	assert.Nil(t, env.Error)
	assert.Contains(t, string(env.Data), `"totalAssignments":8`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestDutyScheduleHandlerGenerateRefusals(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{appErrors.ErrScheduleExists.Code, http.StatusConflict},
		{appErrors.ErrEmptyRoster.Code, http.StatusUnprocessableEntity},
		{appErrors.ErrCapacityExhausted.Code, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			mock := &dutySchedulerMock{result: &dto.GenerateDutyScheduleResult{
				Success: false,
				Term:    models.TermSecond,
				Code:    tc.code,
				Error:   "refused for a reason",
			}}
			w, env := performJSON(dutyRouter(mock), http.MethodPost, "/duty-schedules/generate", []byte(`{"term":"SECOND_TERM"}`))

			require.Equal(t, tc.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Equal(t, "refused for a reason", env.Error.Message)
			assert.Contains(t, string(env.Data), `"success":false`)
		})
	}
}

func TestDutyScheduleHandlerGenerateBadPayload(t *testing.T) {
	w, env := performJSON(dutyRouter(&dutySchedulerMock{}), http.MethodPost, "/duty-schedules/generate", []byte(`{"term":`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
}

func TestDutyScheduleHandlerGeneratePersistenceError(t *testing.T) {
	mock := &dutySchedulerMock{err: appErrors.Wrap(errors.New("boom"), appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to store assignments")}
	w, env := performJSON(dutyRouter(mock), http.MethodPost, "/duty-schedules/generate", []byte(`{"term":"FIRST_TERM"}`))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, appErrors.ErrPersistence.Code, env.Error.Code)
}

func TestDutyScheduleHandlerGet(t *testing.T) {
	mock := &dutySchedulerMock{view: &dto.DutyScheduleView{Term: models.TermFirst, Assignments: []models.Assignment{}}, cached: true}
	w, env := performJSON(dutyRouter(mock), http.MethodGet, "/duty-schedules/FIRST_TERM", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FIRST_TERM", mock.term)
	assert.Equal(t, true, env.Meta["cached"])
	assert.Contains(t, string(env.Data), `"assignments":[]`)
}

func TestDutyScheduleHandlerGetInvalidTerm(t *testing.T) {
	mock := &dutySchedulerMock{err: appErrors.Clone(appErrors.ErrValidation, "term must be FIRST_TERM or SECOND_TERM")}
	w, env := performJSON(dutyRouter(mock), http.MethodGet, "/duty-schedules/SUMMER", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
}

func TestDutyScheduleHandlerAudit(t *testing.T) {
	mock := &dutySchedulerMock{audit: &dto.DutyScheduleAudit{
		Term:    models.TermSecond,
		Valid:   false,
		Checked: 3,
		Violations: []models.ScheduleViolation{
			{Kind: models.ViolationClassDay, AssignmentID: "x"},
		},
	}}
	w, env := performJSON(dutyRouter(mock), http.MethodGet, "/duty-schedules/SECOND_TERM/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SECOND_TERM", mock.term)
	assert.Contains(t, string(env.Data), `"valid":false`)
	assert.Contains(t, string(env.Data), string(models.ViolationClassDay))
}
