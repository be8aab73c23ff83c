package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req struct {
			Data struct {
				Type          string                          `json:"type"`
				Attributes    keyline.ProcessCreateRequest    `json:"attributes"`
				Relationships map[string]keyline.Relationship `json:"relationships"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "processes", req.Data.Type)
		assert.Equal(t, "1337", req.Data.Attributes.Pid)
		assert.Equal(t, "mach-1", req.Data.Relationships["machine"].Data.ID)
		assert.Equal(t, "machines", req.Data.Relationships["machine"].Data.Type)

		process := keyline.Process{
			Resource:   keyline.Resource{ID: "proc-1", Type: keyline.TypeProcesses},
			Attributes: keyline.ProcessAttributes{Pid: "1337", Status: keyline.ProcessAlive},
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Process]{Data: process})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	process, err := processes.Create(context.Background(), &keyline.ProcessCreateRequest{
		Pid:       "1337",
		MachineID: "mach-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "proc-1", process.ID)
	assert.Equal(t, keyline.ProcessAlive, process.Attributes.Status)
}

func TestProcessesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes/proc-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		process := keyline.Process{
			Resource:   keyline.Resource{ID: "proc-1", Type: keyline.TypeProcesses},
			Attributes: keyline.ProcessAttributes{Pid: "1337"},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Process]{Data: process})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	process, err := processes.Get(context.Background(), "proc-1")
	require.NoError(t, err)
	assert.Equal(t, "1337", process.Attributes.Pid)
}

func TestProcessesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes", request.URL.Path)
		assert.Equal(t, "mach-1", request.URL.Query().Get("filter[machine]"))
		assert.Equal(t, "ALIVE", request.URL.Query().Get("filter[status]"))

		response := keyline.ListResponse[keyline.Process]{
			Data: []keyline.Process{
				{Resource: keyline.Resource{ID: "proc-1", Type: keyline.TypeProcesses}},
				{Resource: keyline.Resource{ID: "proc-2", Type: keyline.TypeProcesses}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	list, err := processes.List(context.Background(), &keyline.ProcessListOptions{
		MachineID: "mach-1",
		Status:    keyline.ProcessAlive,
	})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}

func TestProcessesClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes/proc-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var req struct {
			Data struct {
				ID         string                       `json:"id"`
				Attributes keyline.ProcessUpdateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "proc-1", req.Data.ID)
		assert.Equal(t, "worker", req.Data.Attributes.Metadata["role"])

		process := keyline.Process{
			Resource:   keyline.Resource{ID: "proc-1", Type: keyline.TypeProcesses},
			Attributes: keyline.ProcessAttributes{Metadata: keyline.Metadata{"role": "worker"}},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Process]{Data: process})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	process, err := processes.Update(context.Background(), "proc-1", &keyline.ProcessUpdateRequest{
		Metadata: keyline.Metadata{"role": "worker"},
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", process.Attributes.Metadata["role"])
}

func TestProcessesClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes/proc-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	err := processes.Delete(context.Background(), "proc-1")
	require.NoError(t, err)
}

func TestProcessesClient_Ping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/processes/proc-1/actions/ping", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		now := time.Now().UTC()
		process := keyline.Process{
			Resource: keyline.Resource{ID: "proc-1", Type: keyline.TypeProcesses},
			Attributes: keyline.ProcessAttributes{
				Status:        keyline.ProcessAlive,
				LastHeartbeat: &now,
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Process]{Data: process})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	processes := NewProcessesClient(httpClient, TestAccountID)

	process, err := processes.Ping(context.Background(), "proc-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.ProcessAlive, process.Attributes.Status)
	assert.NotNil(t, process.Attributes.LastHeartbeat)
}
