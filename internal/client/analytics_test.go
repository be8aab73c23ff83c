package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPage[T any](total int) keyline.ListResponse[T] {
	return keyline.ListResponse[T]{
		Data: []T{},
		Meta: keyline.ListMeta{Count: &total},
	}
}

func TestAnalyticsClient_Count_Summary(t *testing.T) {
	t.Parallel()

	var listCalls int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/v1/accounts/acct-test/analytics/actions/count" {
			atomic.AddInt32(&listCalls, 1)
			writer.WriteHeader(http.StatusInternalServerError)

			return
		}

		assert.Equal(t, "GET", request.Method)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"meta": map[string]int{
				"activeLicenses":      12,
				"totalLicenses":       20,
				"totalUsers":          34,
				"totalMachines":       8,
				"activeLicensedUsers": 11,
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	counts := client.Analytics().Count(context.Background())
	require.NotNil(t, counts)
	assert.False(t, counts.Degraded)
	assert.Equal(t, 12, counts.ActiveLicenses)
	assert.Equal(t, 20, counts.TotalLicenses)
	assert.Equal(t, 34, counts.TotalUsers)
	assert.Equal(t, 8, counts.TotalMachines)
	assert.Equal(t, 11, counts.ActiveLicensedUsers)
	assert.Equal(t, int32(0), atomic.LoadInt32(&listCalls))
}

func TestAnalyticsClient_Count_TrustsZeroSummary(t *testing.T) {
	t.Parallel()

	var listCalls int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/v1/accounts/acct-test/analytics/actions/count" {
			atomic.AddInt32(&listCalls, 1)
		}

		// A new account legitimately has nothing; all-zero meta decodes to
		// the zero value of every field.
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"meta": map[string]int{}})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	counts := client.Analytics().Count(context.Background())
	require.NotNil(t, counts)
	assert.False(t, counts.Degraded)
	assert.Equal(t, 0, counts.TotalLicenses)
	assert.Equal(t, int32(0), atomic.LoadInt32(&listCalls))
}

func TestAnalyticsClient_Count_FallbackOnSummaryFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()

		switch request.URL.Path {
		case "/v1/accounts/acct-test/analytics/actions/count":
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(keyline.ErrorDocument{
				Errors: []keyline.ErrorObject{{Title: "Not found", Detail: "no such action"}},
			})
		case "/v1/accounts/acct-test/licenses":
			assert.Equal(t, "1", query.Get("limit"))

			if query.Get("filter[status]") == "ACTIVE" {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.License](7))
			} else {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.License](9))
			}
		case "/v1/accounts/acct-test/users":
			assert.Equal(t, "1", query.Get("limit"))

			if query.Get("filter[status]") == "ACTIVE" {
				assert.Equal(t, "true", query.Get("filter[assigned]"))
				_ = json.NewEncoder(writer).Encode(countPage[keyline.User](4))
			} else {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.User](6))
			}
		case "/v1/accounts/acct-test/machines":
			assert.Equal(t, "1", query.Get("limit"))
			_ = json.NewEncoder(writer).Encode(countPage[keyline.Machine](3))
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	counts := client.Analytics().Count(context.Background())
	require.NotNil(t, counts)
	assert.True(t, counts.Degraded)
	assert.Equal(t, 7, counts.ActiveLicenses)
	assert.Equal(t, 9, counts.TotalLicenses)
	assert.Equal(t, 6, counts.TotalUsers)
	assert.Equal(t, 3, counts.TotalMachines)
	assert.Equal(t, 4, counts.ActiveLicensedUsers)
}

func TestAnalyticsClient_Count_ProbeFailureContributesZero(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/accounts/acct-test/analytics/actions/count":
			writer.WriteHeader(http.StatusNotFound)
		case "/v1/accounts/acct-test/licenses":
			if request.URL.Query().Get("filter[status]") == "ACTIVE" {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.License](7))
			} else {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.License](9))
			}
		case "/v1/accounts/acct-test/users":
			if request.URL.Query().Get("filter[status]") == "ACTIVE" {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.User](4))
			} else {
				_ = json.NewEncoder(writer).Encode(countPage[keyline.User](6))
			}
		case "/v1/accounts/acct-test/machines":
			// The machines probe fails; its siblings must still land.
			writer.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(writer).Encode(keyline.ErrorDocument{
				Errors: []keyline.ErrorObject{{Title: "Forbidden", Detail: "token lacks machines scope"}},
			})
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	counts := client.Analytics().Count(context.Background())
	require.NotNil(t, counts)
	assert.True(t, counts.Degraded)
	assert.Equal(t, 7, counts.ActiveLicenses)
	assert.Equal(t, 9, counts.TotalLicenses)
	assert.Equal(t, 6, counts.TotalUsers)
	assert.Equal(t, 0, counts.TotalMachines)
	assert.Equal(t, 4, counts.ActiveLicensedUsers)
}

func TestAnalyticsClient_Count_FallbackUsesPageLength(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/v1/accounts/acct-test/analytics/actions/count" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		// No meta.count; the probe falls back to counting the page.
		switch request.URL.Path {
		case "/v1/accounts/acct-test/licenses":
			_ = json.NewEncoder(writer).Encode(keyline.ListResponse[keyline.License]{
				Data: []keyline.License{{Resource: keyline.Resource{ID: "lic-1", Type: keyline.TypeLicenses}}},
			})
		case "/v1/accounts/acct-test/users":
			_ = json.NewEncoder(writer).Encode(keyline.ListResponse[keyline.User]{Data: []keyline.User{}})
		case "/v1/accounts/acct-test/machines":
			_ = json.NewEncoder(writer).Encode(keyline.ListResponse[keyline.Machine]{Data: []keyline.Machine{}})
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	counts := client.Analytics().Count(context.Background())
	require.NotNil(t, counts)
	assert.True(t, counts.Degraded)
	assert.Equal(t, 1, counts.TotalLicenses)
	assert.Equal(t, 0, counts.TotalUsers)
}
