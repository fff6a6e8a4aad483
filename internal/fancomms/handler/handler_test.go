package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gigrilla/internal/apierrors"
	"gigrilla/internal/fancomms"
	"gigrilla/internal/fancomms/processor"
	"gigrilla/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestHandler(t *testing.T) (*Handler, *MockFanCommsProcessor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockProcessor := NewMockFanCommsProcessor(ctrl)
	handler := New(mockProcessor, observability.NewLogger())
	return &handler, mockProcessor
}

func newTestContext(method, path string, body []byte, params gin.Params, userID *uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if userID != nil {
		c.Set("User-ID", userID.String())
	}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorResponse {
	t.Helper()
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_HandleSendGigUpdate(t *testing.T) {
	t.Parallel()

	artistID := uuid.New()
	gigID := uuid.New()
	sentAt := "2026-06-01T12:00:00.000Z"

	tests := []struct {
		name           string
		userID         *uuid.UUID
		gigParam       string
		body           string
		setupMock      func(m *MockFanCommsProcessor)
		expectedStatus int
		expectedCode   string
		validate       func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:     "sends an update now",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":"Doors at 8","sendMode":"now","regions":"London, Leeds"}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					DoAndReturn(func(_ any, _, _ uuid.UUID, raw fancomms.RawInput) (processor.ComposeResult, error) {
						assert.Equal(t, "Doors at 8", raw.Message)
						assert.Equal(t, fancomms.RegionInput{"London", " Leeds"}, raw.Regions)
						targeted, sent := 3, 3
						return processor.ComposeResult{
							Entry: fancomms.QueueEntry{
								ID:             "entry-1",
								Status:         fancomms.StatusSent,
								SentAt:         &sentAt,
								RecipientCount: &sent,
								Message:        "Doors at 8",
							},
							TargetedCount: &targeted,
							SentCount:     &sent,
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, float64(3), resp["targetedCount"])
				assert.Equal(t, float64(3), resp["sentCount"])
				entry := resp["entry"].(map[string]any)
				assert.Equal(t, "sent", entry["status"])
				assert.Equal(t, sentAt, entry["sent_at"])
			},
		},
		{
			name:     "scheduled update returns null counts",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":"Soon","sendMode":"scheduled","scheduledDate":"2026-07-01"}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					Return(processor.ComposeResult{Entry: fancomms.QueueEntry{ID: "entry-1", Status: fancomms.StatusScheduled}}, nil)
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Nil(t, resp["targetedCount"])
				assert.Nil(t, resp["sentCount"])
			},
		},
		{
			name:     "validation failure maps to bad request",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":""}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					Return(processor.ComposeResult{}, &fancomms.ValidationError{Field: "message", Message: "message is required"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeInvalidInput,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "message is required", decodeError(t, w).Error)
			},
		},
		{
			name:     "unpublished gig",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":"hi"}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					Return(processor.ComposeResult{}, processor.ErrGigNotPublished)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeGigNotPublished,
		},
		{
			name:     "gig owned by someone else",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":"hi"}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					Return(processor.ComposeResult{}, processor.ErrUnauthorized)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apierrors.CodeForbidden,
		},
		{
			name:     "recipient tables missing",
			userID:   &artistID,
			gigParam: gigID.String(),
			body:     `{"message":"hi"}`,
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					SendGigUpdate(gomock.Any(), artistID, gigID, gomock.Any()).
					Return(processor.ComposeResult{}, fmt.Errorf("follower list is not available: %w", processor.ErrRecipientsUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   apierrors.CodeDependencyMissing,
		},
		{
			name:           "malformed json",
			userID:         &artistID,
			gigParam:       gigID.String(),
			body:           `{"message":`,
			setupMock:      func(m *MockFanCommsProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeInvalidInput,
		},
		{
			name:           "regions of the wrong type",
			userID:         &artistID,
			gigParam:       gigID.String(),
			body:           `{"message":"hi","regions":42}`,
			setupMock:      func(m *MockFanCommsProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeInvalidInput,
		},
		{
			name:           "invalid gig id",
			userID:         &artistID,
			gigParam:       "not-a-uuid",
			body:           `{"message":"hi"}`,
			setupMock:      func(m *MockFanCommsProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeInvalidInput,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "GigID must be a valid UUID", decodeError(t, w).Error)
			},
		},
		{
			name:           "missing user",
			gigParam:       gigID.String(),
			body:           `{"message":"hi"}`,
			setupMock:      func(m *MockFanCommsProcessor) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apierrors.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler, mockProcessor := setupTestHandler(t)
			tt.setupMock(mockProcessor)

			c, w := newTestContext(http.MethodPost, "/api/protected/gigs/"+tt.gigParam+"/fan-updates",
				[]byte(tt.body), gin.Params{{Key: "gig_id", Value: tt.gigParam}}, tt.userID)

			handler.HandleSendGigUpdate(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
			}
			if tt.validate != nil {
				tt.validate(t, w)
			}
		})
	}
}

func TestHandler_HandleListGigUpdates(t *testing.T) {
	t.Parallel()

	artistID := uuid.New()
	gigID := uuid.New()
	params := gin.Params{{Key: "gig_id", Value: gigID.String()}}

	t.Run("returns queue and summary", func(t *testing.T) {
		t.Parallel()
		handler, mockProcessor := setupTestHandler(t)
		mockProcessor.EXPECT().
			ListGigUpdates(gomock.Any(), artistID, gigID).
			Return(processor.GigUpdates{
				Queue:   []fancomms.QueueEntry{{ID: "entry-2"}, {ID: "entry-1"}},
				Summary: fancomms.Summary{Sent: 1, Scheduled: 1, Total: 2},
			}, nil)

		c, w := newTestContext(http.MethodGet, "/", nil, params, &artistID)
		handler.HandleListGigUpdates(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp processor.GigUpdates
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Queue, 2)
		assert.Equal(t, "entry-2", resp.Queue[0].ID)
		assert.Equal(t, 2, resp.Summary.Total)
	})

	t.Run("gig not found", func(t *testing.T) {
		t.Parallel()
		handler, mockProcessor := setupTestHandler(t)
		mockProcessor.EXPECT().
			ListGigUpdates(gomock.Any(), artistID, gigID).
			Return(processor.GigUpdates{}, processor.ErrGigNotFound)

		c, w := newTestContext(http.MethodGet, "/", nil, params, &artistID)
		handler.HandleListGigUpdates(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apierrors.CodeGigNotFound, decodeError(t, w).Code)
	})
}

func TestHandler_HandleCancelScheduledUpdate(t *testing.T) {
	t.Parallel()

	artistID := uuid.New()
	gigID := uuid.New()

	tests := []struct {
		name           string
		entryID        string
		setupMock      func(m *MockFanCommsProcessor)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "cancels a scheduled entry",
			entryID: "entry-1",
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					CancelScheduledUpdate(gomock.Any(), artistID, gigID, "entry-1").
					Return(fancomms.QueueEntry{ID: "entry-1", Status: fancomms.StatusCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "entry already sent",
			entryID: "entry-1",
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					CancelScheduledUpdate(gomock.Any(), artistID, gigID, "entry-1").
					Return(fancomms.QueueEntry{}, processor.ErrEntryNotCancellable)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   apierrors.CodeUpdateNotCancelable,
		},
		{
			name:    "entry missing",
			entryID: "entry-9",
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					CancelScheduledUpdate(gomock.Any(), artistID, gigID, "entry-9").
					Return(fancomms.QueueEntry{}, processor.ErrEntryNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   apierrors.CodeUpdateNotFound,
		},
		{
			name:           "entry id too long",
			entryID:        strings.Repeat("e", 65),
			setupMock:      func(m *MockFanCommsProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apierrors.CodeInvalidInput,
		},
		{
			name:    "concurrent writers exhausted retries",
			entryID: "entry-1",
			setupMock: func(m *MockFanCommsProcessor) {
				m.EXPECT().
					CancelScheduledUpdate(gomock.Any(), artistID, gigID, "entry-1").
					Return(fancomms.QueueEntry{}, processor.ErrConcurrentUpdate)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   apierrors.CodeConcurrentUpdate,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler, mockProcessor := setupTestHandler(t)
			tt.setupMock(mockProcessor)

			c, w := newTestContext(http.MethodPost, "/", nil, gin.Params{
				{Key: "gig_id", Value: gigID.String()},
				{Key: "entry_id", Value: tt.entryID},
			}, &artistID)

			handler.HandleCancelScheduledUpdate(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
				return
			}
			var resp CancelResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, fancomms.StatusCancelled, resp.Entry.Status)
		})
	}
}

func TestHandler_HandleDispatchScheduled(t *testing.T) {
	t.Parallel()

	artistID := uuid.New()

	t.Run("returns the sweep report", func(t *testing.T) {
		t.Parallel()
		handler, mockProcessor := setupTestHandler(t)
		mockProcessor.EXPECT().
			SweepArtist(gomock.Any(), artistID).
			Return(processor.SweepReport{GigsScanned: 2, GigsUpdated: 1, EntriesSent: 1}, nil)

		c, w := newTestContext(http.MethodPost, "/", nil, nil, &artistID)
		handler.HandleDispatchScheduled(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]int
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp["gigsScanned"])
		assert.Equal(t, 1, resp["entriesSent"])
	})

	t.Run("store failure is an internal error", func(t *testing.T) {
		t.Parallel()
		handler, mockProcessor := setupTestHandler(t)
		mockProcessor.EXPECT().
			SweepArtist(gomock.Any(), artistID).
			Return(processor.SweepReport{}, errors.New("connection reset"))

		c, w := newTestContext(http.MethodPost, "/", nil, nil, &artistID)
		handler.HandleDispatchScheduled(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
