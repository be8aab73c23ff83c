package keyline

import "context"

// QueryEncoder renders list options as a canonical query string. All
// XxxListOptions types implement it.
type QueryEncoder interface {
	EncodeQuery() string
}

// LicensesClient manages licenses and their lifecycle actions.
type LicensesClient interface {
	Create(ctx context.Context, request *LicenseCreateRequest) (*License, error)
	Get(ctx context.Context, licenseID string) (*License, error)
	List(ctx context.Context, options *LicenseListOptions) (*ListResponse[License], error)
	Update(ctx context.Context, licenseID string, request *LicenseUpdateRequest) (*License, error)
	Delete(ctx context.Context, licenseID string) error

	// Validate checks the license against its policy and returns the
	// server's verdict without mutating the license.
	Validate(ctx context.Context, licenseID string) (*LicenseValidation, error)
	Suspend(ctx context.Context, licenseID string) (*License, error)
	Reinstate(ctx context.Context, licenseID string) (*License, error)
	Renew(ctx context.Context, licenseID string) (*License, error)
	// Revoke permanently revokes the license. Unlike Delete it is an
	// explicit lifecycle action the server records an event for.
	Revoke(ctx context.Context, licenseID string) error
	CheckIn(ctx context.Context, licenseID string) (*License, error)

	AttachEntitlements(ctx context.Context, licenseID string, entitlementIDs []string) error
	DetachEntitlements(ctx context.Context, licenseID string, entitlementIDs []string) error
	ListEntitlements(ctx context.Context, licenseID string, options *EntitlementListOptions) (*ListResponse[Entitlement], error)
}

// UsersClient manages account users.
type UsersClient interface {
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context, options *UserListOptions) (*ListResponse[User], error)
	Update(ctx context.Context, userID string, request *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) error

	// UpdatePassword changes a user's password through its dedicated
	// action endpoint; passwords never travel the generic Update path.
	// A rejected current password surfaces as a validation failure
	// recognizable via IsWrongPassword.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*User, error)
	Ban(ctx context.Context, userID string) (*User, error)
	Unban(ctx context.Context, userID string) (*User, error)
}

// MachinesClient manages activated machines.
type MachinesClient interface {
	Create(ctx context.Context, request *MachineCreateRequest) (*Machine, error)
	Get(ctx context.Context, machineID string) (*Machine, error)
	List(ctx context.Context, options *MachineListOptions) (*ListResponse[Machine], error)
	Update(ctx context.Context, machineID string, request *MachineUpdateRequest) (*Machine, error)
	Delete(ctx context.Context, machineID string) error

	// Ping records a heartbeat for the machine.
	Ping(ctx context.Context, machineID string) (*Machine, error)
	// Reset clears the machine's heartbeat monitor.
	Reset(ctx context.Context, machineID string) (*Machine, error)
}

// ProductsClient manages products.
type ProductsClient interface {
	Create(ctx context.Context, request *ProductCreateRequest) (*Product, error)
	Get(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, options *ProductListOptions) (*ListResponse[Product], error)
	Update(ctx context.Context, productID string, request *ProductUpdateRequest) (*Product, error)
	Delete(ctx context.Context, productID string) error
}

// PoliciesClient manages policies.
type PoliciesClient interface {
	Create(ctx context.Context, request *PolicyCreateRequest) (*Policy, error)
	Get(ctx context.Context, policyID string) (*Policy, error)
	List(ctx context.Context, options *PolicyListOptions) (*ListResponse[Policy], error)
	Update(ctx context.Context, policyID string, request *PolicyUpdateRequest) (*Policy, error)
	Delete(ctx context.Context, policyID string) error
}

// GroupsClient manages groups.
type GroupsClient interface {
	Create(ctx context.Context, request *GroupCreateRequest) (*Group, error)
	Get(ctx context.Context, groupID string) (*Group, error)
	List(ctx context.Context, options *GroupListOptions) (*ListResponse[Group], error)
	Update(ctx context.Context, groupID string, request *GroupUpdateRequest) (*Group, error)
	Delete(ctx context.Context, groupID string) error
}

// EntitlementsClient manages entitlements.
type EntitlementsClient interface {
	Create(ctx context.Context, request *EntitlementCreateRequest) (*Entitlement, error)
	Get(ctx context.Context, entitlementID string) (*Entitlement, error)
	List(ctx context.Context, options *EntitlementListOptions) (*ListResponse[Entitlement], error)
	Update(ctx context.Context, entitlementID string, request *EntitlementUpdateRequest) (*Entitlement, error)
	Delete(ctx context.Context, entitlementID string) error

	// ListLicenses traverses the entitlement's licenses relationship,
	// returning the licenses entitled to it.
	ListLicenses(ctx context.Context, entitlementID string, options *LicenseListOptions) (*ListResponse[License], error)
}

// ProcessesClient manages machine process leases.
type ProcessesClient interface {
	Create(ctx context.Context, request *ProcessCreateRequest) (*Process, error)
	Get(ctx context.Context, processID string) (*Process, error)
	List(ctx context.Context, options *ProcessListOptions) (*ListResponse[Process], error)
	Update(ctx context.Context, processID string, request *ProcessUpdateRequest) (*Process, error)
	Delete(ctx context.Context, processID string) error

	// Ping records a heartbeat for the process.
	Ping(ctx context.Context, processID string) (*Process, error)
}

// ComponentsClient manages machine hardware components.
type ComponentsClient interface {
	Create(ctx context.Context, request *ComponentCreateRequest) (*Component, error)
	Get(ctx context.Context, componentID string) (*Component, error)
	List(ctx context.Context, options *ComponentListOptions) (*ListResponse[Component], error)
	Update(ctx context.Context, componentID string, request *ComponentUpdateRequest) (*Component, error)
	Delete(ctx context.Context, componentID string) error
}

// WebhooksClient manages webhook endpoints.
type WebhooksClient interface {
	Create(ctx context.Context, request *WebhookCreateRequest) (*Webhook, error)
	Get(ctx context.Context, webhookID string) (*Webhook, error)
	List(ctx context.Context, options *WebhookListOptions) (*ListResponse[Webhook], error)
	Update(ctx context.Context, webhookID string, request *WebhookUpdateRequest) (*Webhook, error)
	Delete(ctx context.Context, webhookID string) error

	// EventsByCategory returns the full subscribable event catalog
	// partitioned by resource category. It is static; no request is made.
	EventsByCategory() map[string][]string
}

// RequestLogsClient reads API request logs. The kind is server-emitted and
// read-only.
type RequestLogsClient interface {
	Get(ctx context.Context, logID string) (*RequestLog, error)
	List(ctx context.Context, options *RequestLogListOptions) (*ListResponse[RequestLog], error)
}

// EventLogsClient reads emitted event logs. The kind is server-emitted and
// read-only.
type EventLogsClient interface {
	Get(ctx context.Context, logID string) (*EventLog, error)
	List(ctx context.Context, options *EventLogListOptions) (*ListResponse[EventLog], error)
}

// TokensClient manages issued bearer tokens.
type TokensClient interface {
	Get(ctx context.Context, tokenID string) (*Token, error)
	List(ctx context.Context, options *TokenListOptions) (*ListResponse[Token], error)
	Revoke(ctx context.Context, tokenID string) error
}

// AnalyticsClient aggregates dashboard counts.
type AnalyticsClient interface {
	// Count returns the dashboard summary. It never fails: when the
	// summary endpoint is unavailable it degrades to per-resource counts
	// and flags the result as degraded.
	Count(ctx context.Context) *DashboardCounts
}

// LicensingClients provides access to the license lifecycle clients.
type LicensingClients interface {
	Licenses() LicensesClient
	Policies() PoliciesClient
	Products() ProductsClient
	Entitlements() EntitlementsClient
}

// IdentityClients provides access to identity and access clients.
type IdentityClients interface {
	Users() UsersClient
	Groups() GroupsClient
	Tokens() TokensClient
}

// FleetClients provides access to activated-machine clients.
type FleetClients interface {
	Machines() MachinesClient
	Processes() ProcessesClient
	Components() ComponentsClient
}

// EventingClients provides access to webhook and log clients.
type EventingClients interface {
	Webhooks() WebhooksClient
	RequestLogs() RequestLogsClient
	EventLogs() EventLogsClient
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	// Composite interfaces for resource groups
	LicensingClients
	IdentityClients
	FleetClients
	EventingClients
}

// AccountClient provides account-level operations that sit outside any one
// resource kind.
type AccountClient interface {
	// Analytics returns the dashboard analytics aggregator.
	Analytics() AnalyticsClient

	// Me returns the user the current bearer token authenticates as.
	Me(ctx context.Context) (*User, error)

	// Ping probes API connectivity. It requires no authentication.
	Ping(ctx context.Context) error

	// AccessToken returns the bearer token currently held by the client's
	// session, or the empty string when unauthenticated.
	AccessToken() string
}

// Client is the full typed client surface.
type Client interface {
	// Composite interfaces for related resource groups
	ResourceClients
	AccountClient
}
