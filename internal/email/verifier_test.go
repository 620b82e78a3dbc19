package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"likewire/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *HunterVerifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHunterVerifier("test-key", timeout, WithBaseURL(srv.URL))
}

func TestVerifyValid(t *testing.T) {
	var gotEmail, gotKey string
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		gotEmail = r.URL.Query().Get("email")
		gotKey = r.URL.Query().Get("api_key")
		fmt.Fprint(w, `{"data":{"status":"valid"}}`)
	}, time.Second)

	err := v.Verify(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "test-key", gotKey)
}

func TestVerifyInvalidStatus(t *testing.T) {
	statuses := []string{"invalid", "disposable", "unknown", "accept_all"}

	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"data":{"status":%q}}`, status)
			}, time.Second)

			err := v.Verify(context.Background(), "bob@example.com")
			require.Error(t, err)

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Equal(t, "Can't verify email 'bob@example.com'", appErr.Message)
		})
	}
}

func TestVerifyTimeout(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"data":{"status":"valid"}}`)
	}, 20*time.Millisecond)

	err := v.Verify(context.Background(), "slow@example.com")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeUpstreamTimeout, appErr.Code)
	assert.Contains(t, appErr.Message, "try again later")
}

func TestVerifyUpstreamError(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	err := v.Verify(context.Background(), "alice@example.com")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeUpstreamTimeout, appErr.Code)
}

func TestVerifyUnreadableBody(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `this is not json`)
	}, time.Second)

	err := v.Verify(context.Background(), "alice@example.com")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeUpstreamTimeout, appErr.Code)
}

func TestNoopVerifier(t *testing.T) {
	assert.NoError(t, NoopVerifier{}.Verify(context.Background(), "anything@anywhere"))
}
