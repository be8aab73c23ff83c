package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// AnalyticsClient implements keyline.AnalyticsClient.
type AnalyticsClient struct {
	httpClient *http.Client
	accountID  string
	parent     *Client
}

// NewAnalyticsClient creates a new analytics client. parent supplies the
// per-kind clients the fallback counts with.
func NewAnalyticsClient(httpClient *http.Client, accountID string, parent *Client) *AnalyticsClient {
	return &AnalyticsClient{httpClient: httpClient, accountID: accountID, parent: parent}
}

// Count implements keyline.AnalyticsClient.Count. It prefers the summary
// action and degrades to per-resource count probes when the action fails.
// Zero counts from a healthy summary are trusted, not second-guessed.
func (c *AnalyticsClient) Count(ctx context.Context) *keyline.DashboardCounts {
	counts, err := c.summaryCounts(ctx)
	if err == nil {
		return counts
	}

	return c.fallbackCounts(ctx)
}

func (c *AnalyticsClient) summaryCounts(ctx context.Context) (*keyline.DashboardCounts, error) {
	path := fmt.Sprintf("/v1/accounts/%s/analytics/actions/count", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting analytics counts: %w", err)
	}

	var result struct {
		Meta keyline.DashboardCounts `json:"meta"`
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing analytics response: %w", err)
	}

	return &result.Meta, nil
}

// fallbackCounts reconstructs the dashboard numbers from five single-item
// list probes. Each probe failure contributes zero instead of aborting its
// siblings, so a partial dashboard still renders.
func (c *AnalyticsClient) fallbackCounts(ctx context.Context) *keyline.DashboardCounts {
	counts := &keyline.DashboardCounts{Degraded: true}
	assigned := true

	probes := []struct {
		target *int
		fetch  func(context.Context) (int, error)
	}{
		{&counts.ActiveLicenses, func(ctx context.Context) (int, error) {
			return c.countLicenses(ctx, &keyline.LicenseListOptions{Status: keyline.LicenseStatusActive})
		}},
		{&counts.TotalLicenses, func(ctx context.Context) (int, error) {
			return c.countLicenses(ctx, &keyline.LicenseListOptions{})
		}},
		{&counts.TotalUsers, func(ctx context.Context) (int, error) {
			return c.countUsers(ctx, &keyline.UserListOptions{})
		}},
		{&counts.TotalMachines, func(ctx context.Context) (int, error) {
			return c.countMachines(ctx)
		}},
		{&counts.ActiveLicensedUsers, func(ctx context.Context) (int, error) {
			return c.countUsers(ctx, &keyline.UserListOptions{
				Status:   keyline.UserStatusActive,
				Assigned: &assigned,
			})
		}},
	}

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, constants.DefaultConcurrencyLimit)

	for _, probe := range probes {
		waitGroup.Add(1)

		go func(target *int, fetch func(context.Context) (int, error)) {
			defer waitGroup.Done()

			// Acquire semaphore
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			count, err := fetch(ctx)
			if err != nil {
				return
			}

			*target = count
		}(probe.target, probe.fetch)
	}

	waitGroup.Wait()

	return counts
}

func (c *AnalyticsClient) countLicenses(ctx context.Context, options *keyline.LicenseListOptions) (int, error) {
	options.Limit = constants.CountProbePageSize

	result, err := c.parent.licenses.List(ctx, options)
	if err != nil {
		return 0, err
	}

	return result.Count(), nil
}

func (c *AnalyticsClient) countUsers(ctx context.Context, options *keyline.UserListOptions) (int, error) {
	options.Limit = constants.CountProbePageSize

	result, err := c.parent.users.List(ctx, options)
	if err != nil {
		return 0, err
	}

	return result.Count(), nil
}

func (c *AnalyticsClient) countMachines(ctx context.Context) (int, error) {
	options := &keyline.MachineListOptions{}
	options.Limit = constants.CountProbePageSize

	result, err := c.parent.machines.List(ctx, options)
	if err != nil {
		return 0, err
	}

	return result.Count(), nil
}
