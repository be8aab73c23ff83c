package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachinesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req struct {
			Data struct {
				Type          string                          `json:"type"`
				Attributes    keyline.MachineCreateRequest    `json:"attributes"`
				Relationships map[string]keyline.Relationship `json:"relationships"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "machines", req.Data.Type)
		assert.Equal(t, "4d:5e:6f", req.Data.Attributes.Fingerprint)
		assert.Equal(t, "lic-1", req.Data.Relationships["license"].Data.ID)
		assert.Equal(t, "licenses", req.Data.Relationships["license"].Data.Type)
		assert.NotContains(t, req.Data.Relationships, "owner")

		machine := keyline.Machine{
			Resource: keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{
				Fingerprint: "4d:5e:6f",
				Platform:    "linux",
			},
			Relationships: keyline.MachineRelationships{
				License: keyline.Relationship{
					Data: &keyline.ResourceIdentifier{ID: "lic-1", Type: "licenses"},
				},
			},
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	machine, err := machines.Create(context.Background(), &keyline.MachineCreateRequest{
		Fingerprint: "4d:5e:6f",
		Platform:    "linux",
		LicenseID:   "lic-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "mach-1", machine.ID)
	assert.Equal(t, "lic-1", machine.Relationships.License.Data.ID)
}

func TestMachinesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines/mach-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		machine := keyline.Machine{
			Resource: keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{
				Fingerprint:     "4d:5e:6f",
				HeartbeatStatus: keyline.HeartbeatAlive,
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	machine, err := machines.Get(context.Background(), "mach-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.HeartbeatAlive, machine.Attributes.HeartbeatStatus)
}

func TestMachinesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines", request.URL.Path)
		assert.Equal(t, "lic-1", request.URL.Query().Get("filter[license]"))

		response := keyline.ListResponse[keyline.Machine]{
			Data: []keyline.Machine{
				{Resource: keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines}},
				{Resource: keyline.Resource{ID: "mach-2", Type: keyline.TypeMachines}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	list, err := machines.List(context.Background(), &keyline.MachineListOptions{LicenseID: "lic-1"})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}

func TestMachinesClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines/mach-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var req struct {
			Data struct {
				ID         string                       `json:"id"`
				Attributes keyline.MachineUpdateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "mach-1", req.Data.ID)
		require.NotNil(t, req.Data.Attributes.Name)
		assert.Equal(t, "build-agent-7", *req.Data.Attributes.Name)

		machine := keyline.Machine{
			Resource:   keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{Name: "build-agent-7"},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	name := "build-agent-7"

	machine, err := machines.Update(context.Background(), "mach-1", &keyline.MachineUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "build-agent-7", machine.Attributes.Name)
}

func TestMachinesClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines/mach-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	err := machines.Delete(context.Background(), "mach-1")
	require.NoError(t, err)
}

func TestMachinesClient_Ping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines/mach-1/actions/ping", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		now := time.Now().UTC()
		machine := keyline.Machine{
			Resource: keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{
				HeartbeatStatus: keyline.HeartbeatAlive,
				LastHeartbeat:   &now,
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	machine, err := machines.Ping(context.Background(), "mach-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.HeartbeatAlive, machine.Attributes.HeartbeatStatus)
	assert.NotNil(t, machine.Attributes.LastHeartbeat)
}

func TestMachinesClient_Ping_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			writer.WriteHeader(http.StatusBadGateway)

			return
		}

		machine := keyline.Machine{
			Resource:   keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{HeartbeatStatus: keyline.HeartbeatAlive},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithRetryConfig(2, 1*time.Millisecond, 5*time.Millisecond))
	machines := NewMachinesClient(httpClient, TestAccountID)

	machine, err := machines.Ping(context.Background(), "mach-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	assert.Equal(t, keyline.HeartbeatAlive, machine.Attributes.HeartbeatStatus)
}

func TestMachinesClient_Reset(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/machines/mach-1/actions/reset", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		machine := keyline.Machine{
			Resource:   keyline.Resource{ID: "mach-1", Type: keyline.TypeMachines},
			Attributes: keyline.MachineAttributes{HeartbeatStatus: keyline.HeartbeatNotStarted},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Machine]{Data: machine})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	machines := NewMachinesClient(httpClient, TestAccountID)

	machine, err := machines.Reset(context.Background(), "mach-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.HeartbeatNotStarted, machine.Attributes.HeartbeatStatus)
}
