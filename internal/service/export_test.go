package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/mocks"
	"github.com/dtroode/gophnotes-server/internal/model"
	"github.com/dtroode/gophnotes-server/internal/testutil"
)

func TestExport_Create(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	exportedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	notes := []model.Note{{ID: uuid.New(), OwnerID: ownerID, Title: "t", Content: "c"}}
	wantName := "notes-1714564800000000000.json"

	store := mocks.NewNoteStore(t)
	storage := mocks.NewStorage(t)
	store.On("ListByOwner", mock.Anything, ownerID).Return(notes, nil)

	var uploaded []byte
	storage.On("Upload", mock.Anything, ownerID.String()+"/"+wantName, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).
		Return(nil)

	s := NewExport(store, storage, testutil.MakeNoopLogger())
	s.now = func() time.Time { return exportedAt }

	name, err := s.Create(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, wantName, name)

	var snapshot model.NoteSnapshot
	require.NoError(t, json.Unmarshal(uploaded, &snapshot))
	assert.Equal(t, ownerID, snapshot.OwnerID)
	assert.True(t, exportedAt.Equal(snapshot.ExportedAt))
	require.Len(t, snapshot.Notes, 1)
	assert.Equal(t, "t", snapshot.Notes[0].Title)
}

func TestExport_CreateFailures(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("list fails", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewNoteStore(t)
		store.On("ListByOwner", mock.Anything, ownerID).Return(nil, errors.New("boom"))

		_, err := NewExport(store, mocks.NewStorage(t), testutil.MakeNoopLogger()).Create(context.Background(), ownerID)
		assert.ErrorContains(t, err, "failed to list notes")
	})

	t.Run("upload fails", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewNoteStore(t)
		storage := mocks.NewStorage(t)
		store.On("ListByOwner", mock.Anything, ownerID).Return([]model.Note{}, nil)
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

		_, err := NewExport(store, storage, testutil.MakeNoopLogger()).Create(context.Background(), ownerID)
		assert.ErrorContains(t, err, "failed to upload snapshot")
	})
}

func TestExport_Open(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	key := ownerID.String() + "/notes-1.json"

	tests := []struct {
		name     string
		fileName string
		setup    func(storage *mocks.Storage)
		wantKind apierrors.Kind
		wantBody string
	}{
		{
			name:     "path traversal is rejected",
			fileName: "../" + uuid.NewString() + "/notes-1.json",
			setup:    func(*mocks.Storage) {},
			wantKind: apierrors.KindNotFound,
		},
		{
			name:     "unknown snapshot",
			fileName: "notes-1.json",
			setup: func(storage *mocks.Storage) {
				storage.On("Exists", mock.Anything, key).Return(false, nil)
			},
			wantKind: apierrors.KindNotFound,
		},
		{
			name:     "existing snapshot",
			fileName: "notes-1.json",
			setup: func(storage *mocks.Storage) {
				storage.On("Exists", mock.Anything, key).Return(true, nil)
				storage.On("Download", mock.Anything, key).Return(io.NopCloser(bytes.NewBufferString(`{"notes":[]}`)), nil)
			},
			wantBody: `{"notes":[]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			storage := mocks.NewStorage(t)
			tt.setup(storage)

			rc, err := NewExport(mocks.NewNoteStore(t), storage, testutil.MakeNoopLogger()).
				Open(context.Background(), ownerID, tt.fileName)
			if tt.wantKind != "" {
				assert.True(t, apierrors.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			defer rc.Close()
			body, _ := io.ReadAll(rc)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestExport_Delete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	key := ownerID.String() + "/notes-7.json"

	storage := mocks.NewStorage(t)
	storage.On("Exists", mock.Anything, key).Return(true, nil).Once()
	storage.On("Delete", mock.Anything, key).Return(nil).Once()

	s := NewExport(mocks.NewNoteStore(t), storage, testutil.MakeNoopLogger())
	require.NoError(t, s.Delete(context.Background(), ownerID, "notes-7.json"))

	storage.On("Exists", mock.Anything, key).Return(false, nil).Once()
	err := s.Delete(context.Background(), ownerID, "notes-7.json")
	assert.True(t, apierrors.IsKind(err, apierrors.KindNotFound))
}
