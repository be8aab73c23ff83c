package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req struct {
			Data struct {
				Type       string                           `json:"type"`
				Attributes keyline.EntitlementCreateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "entitlements", req.Data.Type)
		assert.Equal(t, "Offline Mode", req.Data.Attributes.Name)
		assert.Equal(t, "OFFLINE_MODE", req.Data.Attributes.Code)

		entitlement := keyline.Entitlement{
			Resource:   keyline.Resource{ID: "ent-1", Type: keyline.TypeEntitlements},
			Attributes: keyline.EntitlementAttributes{Name: "Offline Mode", Code: "OFFLINE_MODE"},
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Entitlement]{Data: entitlement})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	entitlement, err := entitlements.Create(context.Background(), &keyline.EntitlementCreateRequest{
		Name: "Offline Mode",
		Code: "OFFLINE_MODE",
	})
	require.NoError(t, err)
	assert.Equal(t, "ent-1", entitlement.ID)
	assert.Equal(t, "OFFLINE_MODE", entitlement.Attributes.Code)
}

func TestEntitlementsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements/ent-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		entitlement := keyline.Entitlement{
			Resource:   keyline.Resource{ID: "ent-1", Type: keyline.TypeEntitlements},
			Attributes: keyline.EntitlementAttributes{Code: "OFFLINE_MODE"},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Entitlement]{Data: entitlement})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	entitlement, err := entitlements.Get(context.Background(), "ent-1")
	require.NoError(t, err)
	assert.Equal(t, "OFFLINE_MODE", entitlement.Attributes.Code)
}

func TestEntitlementsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements", request.URL.Path)
		assert.Equal(t, "OFFLINE_MODE", request.URL.Query().Get("filter[code]"))

		response := keyline.ListResponse[keyline.Entitlement]{
			Data: []keyline.Entitlement{
				{Resource: keyline.Resource{ID: "ent-1", Type: keyline.TypeEntitlements}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	list, err := entitlements.List(context.Background(), &keyline.EntitlementListOptions{Code: "OFFLINE_MODE"})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestEntitlementsClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements/ent-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var req struct {
			Data struct {
				ID         string                           `json:"id"`
				Attributes keyline.EntitlementUpdateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "ent-1", req.Data.ID)
		require.NotNil(t, req.Data.Attributes.Name)
		assert.Equal(t, "Offline Mode v2", *req.Data.Attributes.Name)

		entitlement := keyline.Entitlement{
			Resource:   keyline.Resource{ID: "ent-1", Type: keyline.TypeEntitlements},
			Attributes: keyline.EntitlementAttributes{Name: "Offline Mode v2"},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Entitlement]{Data: entitlement})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	name := "Offline Mode v2"

	entitlement, err := entitlements.Update(context.Background(), "ent-1", &keyline.EntitlementUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Offline Mode v2", entitlement.Attributes.Name)
}

func TestEntitlementsClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements/ent-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	err := entitlements.Delete(context.Background(), "ent-1")
	require.NoError(t, err)
}

func TestEntitlementsClient_ListLicenses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/entitlements/ent-1/licenses", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "ACTIVE", request.URL.Query().Get("filter[status]"))

		response := keyline.ListResponse[keyline.License]{
			Data: []keyline.License{
				{
					Resource:   keyline.Resource{ID: "lic-1", Type: keyline.TypeLicenses},
					Attributes: keyline.LicenseAttributes{Status: keyline.LicenseStatusActive},
				},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	entitlements := NewEntitlementsClient(httpClient, TestAccountID)

	list, err := entitlements.ListLicenses(context.Background(), "ent-1", &keyline.LicenseListOptions{
		Status: keyline.LicenseStatusActive,
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "lic-1", list.Data[0].ID)
}
