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

func TestPoliciesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/policies", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req struct {
			Data struct {
				Type          string                          `json:"type"`
				Attributes    keyline.PolicyCreateRequest     `json:"attributes"`
				Relationships map[string]keyline.Relationship `json:"relationships"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "policies", req.Data.Type)
		assert.Equal(t, "Annual Floating", req.Data.Attributes.Name)
		require.NotNil(t, req.Data.Attributes.Duration)
		assert.Equal(t, int64(31536000), *req.Data.Attributes.Duration)
		assert.Equal(t, "prod-1", req.Data.Relationships["product"].Data.ID)
		assert.Equal(t, "products", req.Data.Relationships["product"].Data.Type)

		duration := int64(31536000)
		maxMachines := 5
		policy := keyline.Policy{
			Resource: keyline.Resource{ID: "policy-1", Type: keyline.TypePolicies},
			Attributes: keyline.PolicyAttributes{
				Name:        "Annual Floating",
				Duration:    &duration,
				Floating:    true,
				MaxMachines: &maxMachines,
			},
			Relationships: keyline.PolicyRelationships{
				Product: keyline.Relationship{
					Data: &keyline.ResourceIdentifier{ID: "prod-1", Type: "products"},
				},
			},
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Policy]{Data: policy})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	policies := NewPoliciesClient(httpClient, TestAccountID)

	duration := int64(31536000)
	floating := true
	maxMachines := 5

	policy, err := policies.Create(context.Background(), &keyline.PolicyCreateRequest{
		Name:        "Annual Floating",
		Duration:    &duration,
		Floating:    &floating,
		MaxMachines: &maxMachines,
		ProductID:   "prod-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "policy-1", policy.ID)
	assert.True(t, policy.Attributes.Floating)
	assert.Equal(t, "prod-1", policy.Relationships.Product.Data.ID)
}

func TestPoliciesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/policies/policy-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		policy := keyline.Policy{
			Resource: keyline.Resource{ID: "policy-1", Type: keyline.TypePolicies},
			Attributes: keyline.PolicyAttributes{
				Name:               "Annual Floating",
				ExpirationStrategy: keyline.ExpirationRestrictAccess,
				RenewalBasis:       keyline.RenewFromExpiry,
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Policy]{Data: policy})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	policies := NewPoliciesClient(httpClient, TestAccountID)

	policy, err := policies.Get(context.Background(), "policy-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.ExpirationRestrictAccess, policy.Attributes.ExpirationStrategy)
	assert.Equal(t, keyline.RenewFromExpiry, policy.Attributes.RenewalBasis)
}

func TestPoliciesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/policies", request.URL.Path)
		assert.Equal(t, "prod-1", request.URL.Query().Get("filter[product]"))

		response := keyline.ListResponse[keyline.Policy]{
			Data: []keyline.Policy{
				{Resource: keyline.Resource{ID: "policy-1", Type: keyline.TypePolicies}},
				{Resource: keyline.Resource{ID: "policy-2", Type: keyline.TypePolicies}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	policies := NewPoliciesClient(httpClient, TestAccountID)

	list, err := policies.List(context.Background(), &keyline.PolicyListOptions{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}

func TestPoliciesClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/policies/policy-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var req struct {
			Data struct {
				ID         string                      `json:"id"`
				Attributes keyline.PolicyUpdateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "policy-1", req.Data.ID)
		require.NotNil(t, req.Data.Attributes.MaxMachines)
		assert.Equal(t, 10, *req.Data.Attributes.MaxMachines)

		maxMachines := 10
		policy := keyline.Policy{
			Resource:   keyline.Resource{ID: "policy-1", Type: keyline.TypePolicies},
			Attributes: keyline.PolicyAttributes{MaxMachines: &maxMachines},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Policy]{Data: policy})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	policies := NewPoliciesClient(httpClient, TestAccountID)

	maxMachines := 10

	policy, err := policies.Update(context.Background(), "policy-1", &keyline.PolicyUpdateRequest{MaxMachines: &maxMachines})
	require.NoError(t, err)
	require.NotNil(t, policy.Attributes.MaxMachines)
	assert.Equal(t, 10, *policy.Attributes.MaxMachines)
}

func TestPoliciesClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/policies/policy-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	policies := NewPoliciesClient(httpClient, TestAccountID)

	err := policies.Delete(context.Background(), "policy-1")
	require.NoError(t, err)
}
