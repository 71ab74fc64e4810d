package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/mocks"
	"github.com/dtroode/gophnotes-server/internal/model"
	"github.com/dtroode/gophnotes-server/internal/testutil"
)

func TestExport_Create(t *testing.T) {
	t.Parallel()

	identity := model.Identity{UserID: uuid.New()}

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewExportService(t)
		cm := mocks.NewContextManager(t)
		withIdentity(cm, identity)
		svc.On("Create", mock.Anything, identity.UserID).Return("notes-5.json", nil)

		rec := httptest.NewRecorder()
		NewExport(svc, cm, testutil.MakeNoopLogger()).Create(rec, httptest.NewRequest(http.MethodPost, "/api/notes/export", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Notes exported successfully","key":"notes-5.json"}`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewExportService(t)
		cm := mocks.NewContextManager(t)
		withIdentity(cm, identity)
		svc.On("Create", mock.Anything, identity.UserID).Return("", errors.New("bucket gone"))

		rec := httptest.NewRecorder()
		NewExport(svc, cm, testutil.MakeNoopLogger()).Create(rec, httptest.NewRequest(http.MethodPost, "/api/notes/export", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "bucket gone")
	})
}

func TestExport_GetAndDelete(t *testing.T) {
	t.Parallel()

	identity := model.Identity{UserID: uuid.New()}
	request := func(method, name string) *http.Request {
		req := httptest.NewRequest(method, "/api/notes/export/"+name, nil)
		return mux.SetURLVars(req, map[string]string{"name": name})
	}

	t.Run("get streams snapshot", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewExportService(t)
		cm := mocks.NewContextManager(t)
		withIdentity(cm, identity)
		svc.On("Open", mock.Anything, identity.UserID, "notes-1.json").
			Return(io.NopCloser(bytes.NewBufferString(`{"notes":[]}`)), nil)

		rec := httptest.NewRecorder()
		NewExport(svc, cm, testutil.MakeNoopLogger()).Get(rec, request(http.MethodGet, "notes-1.json"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"notes":[]}`, rec.Body.String())
	})

	t.Run("get unknown snapshot", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewExportService(t)
		cm := mocks.NewContextManager(t)
		withIdentity(cm, identity)
		svc.On("Open", mock.Anything, identity.UserID, "notes-2.json").Return(nil, apierrors.NewErrExportNotFound())

		rec := httptest.NewRecorder()
		NewExport(svc, cm, testutil.MakeNoopLogger()).Get(rec, request(http.MethodGet, "notes-2.json"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Export not found"}`, rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewExportService(t)
		cm := mocks.NewContextManager(t)
		withIdentity(cm, identity)
		svc.On("Delete", mock.Anything, identity.UserID, "notes-1.json").Return(nil)

		rec := httptest.NewRecorder()
		NewExport(svc, cm, testutil.MakeNoopLogger()).Delete(rec, request(http.MethodDelete, "notes-1.json"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Export deleted successfully"}`, rec.Body.String())
	})
}
