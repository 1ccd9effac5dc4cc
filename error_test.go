package newsdesk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/newsdesk"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newsdesk.Errorf(newsdesk.ENOTFOUND, "category %q not found", "sports")

	assert.Equal(t, newsdesk.ENOTFOUND, newsdesk.ErrorCode(err))
	assert.Equal(t, "category \"sports\" not found", newsdesk.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, newsdesk.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("summarize: %w", newsdesk.Errorf(newsdesk.ERATELIMIT, "quota exceeded"))
		assert.Equal(t, newsdesk.ERATELIMIT, newsdesk.ErrorCode(err))
	})

	t.Run("foreign error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, newsdesk.EINTERNAL, newsdesk.ErrorCode(errors.New("boom")))
	})

	t.Run("fetch error maps through its kind", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			err  *newsdesk.FetchError
			want string
		}{
			{&newsdesk.FetchError{Kind: newsdesk.FetchTimeout}, newsdesk.ETIMEOUT},
			{&newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 404}, newsdesk.ENOTFOUND},
			{&newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 429}, newsdesk.ERATELIMIT},
			{&newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 403}, newsdesk.EUNAUTHORIZED},
			{&newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 502}, newsdesk.EUNAVAILABLE},
			{&newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 400}, newsdesk.EUNAVAILABLE},
			{&newsdesk.FetchError{Kind: newsdesk.FetchNetworkError, Err: context.Canceled}, newsdesk.EUNAVAILABLE},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, newsdesk.ErrorCode(fmt.Errorf("wrap: %w", tc.err)), tc.err.Error())
		}
	})
}

func TestStatusErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{400, newsdesk.EINVALID},
		{401, newsdesk.EUNAUTHORIZED},
		{403, newsdesk.EUNAUTHORIZED},
		{404, newsdesk.ENOTFOUND},
		{408, newsdesk.ETIMEOUT},
		{429, newsdesk.ERATELIMIT},
		{500, newsdesk.EUNAVAILABLE},
		{504, newsdesk.ETIMEOUT},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, newsdesk.StatusErrorCode(tt.status), tt.status)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, newsdesk.ErrorMessage(nil))
	})

	t.Run("foreign error hides details", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", newsdesk.ErrorMessage(errors.New("secret")))
	})

	t.Run("fetch error describes the failure", func(t *testing.T) {
		t.Parallel()
		err := &newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: 503, URL: "https://example.com/a"}
		assert.Equal(t, "HTTP 503 for https://example.com/a", newsdesk.ErrorMessage(err))
	})
}
