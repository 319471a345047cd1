package netx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadToS3PresignedURL(t *testing.T) {
	file := []byte("evidence bytes")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToS3PresignedURL(context.Background(), ts.URL+"/evidence/0xab?X-Amz-Signature=abc", file)
		require.NoError(t, err)
		require.Equal(t, http.MethodPut, gotMethod)
		require.Equal(t, "application/octet-stream", gotCT)
		require.True(t, bytes.Equal(gotBody, file))
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		err := UploadToS3PresignedURL(context.Background(), ts.URL, file)
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "upload failed: 403"), err.Error())
		require.Contains(t, err.Error(), "SignatureDoesNotMatch")
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToS3PresignedURL(context.Background(), ts.URL, file)
		require.Error(t, err)
		require.NotContains(t, err.Error(), "upload failed")
	})

	t.Run("bad url", func(t *testing.T) {
		err := UploadToS3PresignedURL(context.Background(), "://nope", file)
		require.Error(t, err)
	})
}
