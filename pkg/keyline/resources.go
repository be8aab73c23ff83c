package keyline

import "time"

// Canonical resource type discriminants. Every resource's Type field must
// equal its kind's constant; they are part of the wire contract.
const (
	TypeLicenses     = "licenses"
	TypeUsers        = "users"
	TypeMachines     = "machines"
	TypeProducts     = "products"
	TypePolicies     = "policies"
	TypeGroups       = "groups"
	TypeEntitlements = "entitlements"
	TypeProcesses    = "processes"
	TypeComponents   = "components"
	TypeRequestLogs  = "request-logs"
	TypeWebhooks     = "webhooks"
	TypeEventLogs    = "event-logs"
	TypeTokens       = "tokens"
	TypeAccounts     = "accounts"
)

// LicenseStatus is the server-computed license lifecycle state.
type LicenseStatus string

// License status values, served verbatim by the API.
const (
	LicenseStatusActive    LicenseStatus = "ACTIVE"
	LicenseStatusInactive  LicenseStatus = "INACTIVE"
	LicenseStatusExpiring  LicenseStatus = "EXPIRING"
	LicenseStatusExpired   LicenseStatus = "EXPIRED"
	LicenseStatusSuspended LicenseStatus = "SUSPENDED"
	LicenseStatusBanned    LicenseStatus = "BANNED"
)

// UserStatus is the user lifecycle state.
type UserStatus string

// User status values.
const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBanned   UserStatus = "BANNED"
)

// UserRole is a user's access role within the account.
type UserRole string

// User roles.
const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleDeveloper    UserRole = "developer"
	UserRoleSalesAgent   UserRole = "sales-agent"
	UserRoleSupportAgent UserRole = "support-agent"
	UserRoleReadOnly     UserRole = "read-only"
	UserRoleUser         UserRole = "user"
)

// Scheme is a license key cryptographic scheme.
type Scheme string

// Cryptographic schemes.
const (
	SchemeEd25519Sign       Scheme = "ED25519_SIGN"
	SchemeRSA2048PSSSignV2  Scheme = "RSA_2048_PKCS1_PSS_SIGN_V2"
	SchemeRSA2048SignV2     Scheme = "RSA_2048_PKCS1_SIGN_V2"
	SchemeRSA2048Encrypt    Scheme = "RSA_2048_PKCS1_ENCRYPT"
	SchemeRSA2048JWTRS256   Scheme = "RSA_2048_JWT_RS256"
)

// HeartbeatStatus is a machine or process heartbeat state.
type HeartbeatStatus string

// Heartbeat states.
const (
	HeartbeatNotStarted  HeartbeatStatus = "NOT_STARTED"
	HeartbeatAlive       HeartbeatStatus = "ALIVE"
	HeartbeatDead        HeartbeatStatus = "DEAD"
	HeartbeatResurrected HeartbeatStatus = "RESURRECTED"
)

// DistributionStrategy controls which licensees may access product releases.
type DistributionStrategy string

// Distribution strategies.
const (
	DistributionLicensed DistributionStrategy = "LICENSED"
	DistributionOpen     DistributionStrategy = "OPEN"
	DistributionClosed   DistributionStrategy = "CLOSED"
)

// Policy strategy enumerations. These are opaque wire values the client
// passes through verbatim; it never reinterprets them.
type (
	ExpirationStrategy            string
	ExpirationBasis               string
	RenewalBasis                  string
	TransferStrategy              string
	AuthenticationStrategy        string
	MatchingStrategy              string
	UniquenessStrategy            string
	LeasingStrategy               string
	OverageStrategy               string
	HeartbeatCullStrategy         string
	HeartbeatResurrectionStrategy string
	HeartbeatBasis                string
)

// Expiration strategies.
const (
	ExpirationRestrictAccess ExpirationStrategy = "RESTRICT_ACCESS"
	ExpirationRevokeAccess   ExpirationStrategy = "REVOKE_ACCESS"
	ExpirationMaintainAccess ExpirationStrategy = "MAINTAIN_ACCESS"
	ExpirationAllowAccess    ExpirationStrategy = "ALLOW_ACCESS"
)

// Expiration bases.
const (
	ExpireFromCreation        ExpirationBasis = "FROM_CREATION"
	ExpireFromFirstValidation ExpirationBasis = "FROM_FIRST_VALIDATION"
	ExpireFromFirstActivation ExpirationBasis = "FROM_FIRST_ACTIVATION"
	ExpireFromFirstUse        ExpirationBasis = "FROM_FIRST_USE"
)

// Renewal bases.
const (
	RenewFromExpiry       RenewalBasis = "FROM_EXPIRY"
	RenewFromNow          RenewalBasis = "FROM_NOW"
	RenewFromNowIfExpired RenewalBasis = "FROM_NOW_IF_EXPIRED"
)

// Transfer strategies.
const (
	TransferKeepExpiry  TransferStrategy = "KEEP_EXPIRY"
	TransferResetExpiry TransferStrategy = "RESET_EXPIRY"
)

// Authentication strategies.
const (
	AuthStrategyToken   AuthenticationStrategy = "TOKEN"
	AuthStrategyLicense AuthenticationStrategy = "LICENSE"
	AuthStrategyMixed   AuthenticationStrategy = "MIXED"
	AuthStrategyNone    AuthenticationStrategy = "NONE"
)

// Fingerprint matching strategies.
const (
	MatchAny  MatchingStrategy = "MATCH_ANY"
	MatchTwo  MatchingStrategy = "MATCH_TWO"
	MatchMost MatchingStrategy = "MATCH_MOST"
	MatchAll  MatchingStrategy = "MATCH_ALL"
)

// Fingerprint uniqueness scopes.
const (
	UniquePerAccount UniquenessStrategy = "UNIQUE_PER_ACCOUNT"
	UniquePerProduct UniquenessStrategy = "UNIQUE_PER_PRODUCT"
	UniquePerPolicy  UniquenessStrategy = "UNIQUE_PER_POLICY"
	UniquePerLicense UniquenessStrategy = "UNIQUE_PER_LICENSE"
)

// Leasing strategies.
const (
	LeasePerLicense LeasingStrategy = "PER_LICENSE"
	LeasePerUser    LeasingStrategy = "PER_USER"
	LeasePerMachine LeasingStrategy = "PER_MACHINE"
)

// Overage strategies.
const (
	OverageAlwaysAllow OverageStrategy = "ALWAYS_ALLOW_OVERAGE"
	OverageAllow125x   OverageStrategy = "ALLOW_1_25X_OVERAGE"
	OverageAllow15x    OverageStrategy = "ALLOW_1_5X_OVERAGE"
	OverageAllow2x     OverageStrategy = "ALLOW_2X_OVERAGE"
	OverageNone        OverageStrategy = "NO_OVERAGE"
)

// Heartbeat cull strategies.
const (
	CullDeactivateDead HeartbeatCullStrategy = "DEACTIVATE_DEAD"
	CullKeepDead       HeartbeatCullStrategy = "KEEP_DEAD"
)

// Heartbeat resurrection windows.
const (
	ReviveNever    HeartbeatResurrectionStrategy = "NO_REVIVE"
	Revive1Minute  HeartbeatResurrectionStrategy = "1_MINUTE_REVIVE"
	Revive2Minute  HeartbeatResurrectionStrategy = "2_MINUTE_REVIVE"
	Revive5Minute  HeartbeatResurrectionStrategy = "5_MINUTE_REVIVE"
	Revive10Minute HeartbeatResurrectionStrategy = "10_MINUTE_REVIVE"
	Revive15Minute HeartbeatResurrectionStrategy = "15_MINUTE_REVIVE"
	ReviveAlways   HeartbeatResurrectionStrategy = "ALWAYS_REVIVE"
)

// Heartbeat bases.
const (
	HeartbeatFromCreation  HeartbeatBasis = "FROM_CREATION"
	HeartbeatFromFirstPing HeartbeatBasis = "FROM_FIRST_PING"
)

// TokenKind is the kind of bearer token issued by the token endpoint.
type TokenKind string

// Token kinds.
const (
	TokenKindAdmin      TokenKind = "admin-token"
	TokenKindUser       TokenKind = "user-token"
	TokenKindProduct    TokenKind = "product-token"
	TokenKindActivation TokenKind = "activation-token"
)

// Metadata is the free-form metadata attribute carried by most resources.
type Metadata map[string]interface{}

// License represents a license issued under a policy.
type License struct {
	Resource

	Attributes    LicenseAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships LicenseRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// LicenseAttributes are the license's typed attributes.
type LicenseAttributes struct {
	Name             string        `json:"name,omitempty"          yaml:"name,omitempty"`
	Key              string        `json:"key,omitempty"           yaml:"key,omitempty"`
	Expiry           *time.Time    `json:"expiry,omitempty"        yaml:"expiry,omitempty"`
	Status           LicenseStatus `json:"status,omitempty"        yaml:"status,omitempty"`
	Uses             int           `json:"uses"                    yaml:"uses"`
	MaxUses          *int          `json:"maxUses,omitempty"       yaml:"maxUses,omitempty"`
	MaxMachines      *int          `json:"maxMachines,omitempty"   yaml:"maxMachines,omitempty"`
	MaxProcesses     *int          `json:"maxProcesses,omitempty"  yaml:"maxProcesses,omitempty"`
	MaxCores         *int          `json:"maxCores,omitempty"      yaml:"maxCores,omitempty"`
	Scheme           Scheme        `json:"scheme,omitempty"        yaml:"scheme,omitempty"`
	Encrypted        bool          `json:"encrypted"               yaml:"encrypted"`
	Strict           bool          `json:"strict"                  yaml:"strict"`
	Floating         bool          `json:"floating"                yaml:"floating"`
	Protected        bool          `json:"protected"               yaml:"protected"`
	Suspended        bool          `json:"suspended"               yaml:"suspended"`
	RequireHeartbeat bool          `json:"requireHeartbeat"        yaml:"requireHeartbeat"`
	RequireCheckIn   bool          `json:"requireCheckIn"          yaml:"requireCheckIn"`
	LastValidated    *time.Time    `json:"lastValidated,omitempty" yaml:"lastValidated,omitempty"`
	LastCheckIn      *time.Time    `json:"lastCheckIn,omitempty"   yaml:"lastCheckIn,omitempty"`
	NextCheckIn      *time.Time    `json:"nextCheckIn,omitempty"   yaml:"nextCheckIn,omitempty"`
	Metadata         Metadata      `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
	Created          time.Time     `json:"created"                 yaml:"created"`
	Updated          time.Time     `json:"updated"                 yaml:"updated"`
}

// LicenseRelationships are the license's typed relationships.
type LicenseRelationships struct {
	Policy       Relationship       `json:"policy,omitempty"       yaml:"policy,omitempty"`
	Product      Relationship       `json:"product,omitempty"      yaml:"product,omitempty"`
	Owner        Relationship       `json:"owner,omitempty"        yaml:"owner,omitempty"`
	Group        Relationship       `json:"group,omitempty"        yaml:"group,omitempty"`
	Users        ToManyRelationship `json:"users,omitempty"        yaml:"users,omitempty"`
	Machines     ToManyRelationship `json:"machines,omitempty"     yaml:"machines,omitempty"`
	Entitlements ToManyRelationship `json:"entitlements,omitempty" yaml:"entitlements,omitempty"`
}

// LicenseCreateRequest represents a request to create a license. Relationship
// targets are given as plain ids; the client assembles the wire document.
type LicenseCreateRequest struct {
	// Name is a human-readable label for the license.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Key optionally supplies a pre-generated key; when empty the server
	// generates one according to the policy scheme.
	Key    string     `json:"key,omitempty"    yaml:"key,omitempty"`
	Expiry *time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	// MaxMachines etc. override the policy defaults when non-nil.
	MaxMachines  *int     `json:"maxMachines,omitempty"  yaml:"maxMachines,omitempty"`
	MaxProcesses *int     `json:"maxProcesses,omitempty" yaml:"maxProcesses,omitempty"`
	MaxCores     *int     `json:"maxCores,omitempty"     yaml:"maxCores,omitempty"`
	MaxUses      *int     `json:"maxUses,omitempty"      yaml:"maxUses,omitempty"`
	Protected    *bool    `json:"protected,omitempty"    yaml:"protected,omitempty"`
	Suspended    *bool    `json:"suspended,omitempty"    yaml:"suspended,omitempty"`
	Metadata     Metadata `json:"metadata,omitempty"     yaml:"metadata,omitempty"`

	// PolicyID selects the policy the license implements. Required.
	PolicyID string `json:"-" yaml:"-"`
	// OwnerID optionally assigns the owning user.
	OwnerID string `json:"-" yaml:"-"`
	// GroupID optionally places the license in a group.
	GroupID string `json:"-" yaml:"-"`
}

// LicenseUpdateRequest represents a partial license update; nil fields are
// left unchanged.
type LicenseUpdateRequest struct {
	Name         *string    `json:"name,omitempty"         yaml:"name,omitempty"`
	Expiry       *time.Time `json:"expiry,omitempty"       yaml:"expiry,omitempty"`
	MaxMachines  *int       `json:"maxMachines,omitempty"  yaml:"maxMachines,omitempty"`
	MaxProcesses *int       `json:"maxProcesses,omitempty" yaml:"maxProcesses,omitempty"`
	MaxCores     *int       `json:"maxCores,omitempty"     yaml:"maxCores,omitempty"`
	MaxUses      *int       `json:"maxUses,omitempty"      yaml:"maxUses,omitempty"`
	Protected    *bool      `json:"protected,omitempty"    yaml:"protected,omitempty"`
	Suspended    *bool      `json:"suspended,omitempty"    yaml:"suspended,omitempty"`
	Metadata     Metadata   `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
}

// LicenseValidation is the meta payload returned by the validate action.
type LicenseValidation struct {
	Valid     bool      `json:"valid"            yaml:"valid"`
	Code      string    `json:"code,omitempty"   yaml:"code,omitempty"`
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"`
	Timestamp time.Time `json:"ts"               yaml:"ts"`
}

// User represents an account member or licensee.
type User struct {
	Resource

	Attributes    UserAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships UserRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// UserAttributes are the user's typed attributes.
type UserAttributes struct {
	FirstName string     `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	FullName  string     `json:"fullName,omitempty"  yaml:"fullName,omitempty"`
	Email     string     `json:"email"               yaml:"email"`
	Status    UserStatus `json:"status,omitempty"    yaml:"status,omitempty"`
	Role      UserRole   `json:"role,omitempty"      yaml:"role,omitempty"`
	Metadata  Metadata   `json:"metadata,omitempty"  yaml:"metadata,omitempty"`
	Created   time.Time  `json:"created"             yaml:"created"`
	Updated   time.Time  `json:"updated"             yaml:"updated"`
}

// UserRelationships are the user's typed relationships.
type UserRelationships struct {
	Group Relationship `json:"group,omitempty" yaml:"group,omitempty"`
}

// UserCreateRequest represents a request to create a user.
type UserCreateRequest struct {
	FirstName string   `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Email     string   `json:"email"               yaml:"email"`
	Password  string   `json:"password,omitempty"  yaml:"password,omitempty"`
	Role      UserRole `json:"role,omitempty"      yaml:"role,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"  yaml:"metadata,omitempty"`

	// GroupID optionally places the user in a group.
	GroupID string `json:"-" yaml:"-"`
}

// UserUpdateRequest represents a partial user update; nil fields are left
// unchanged. Passwords never travel this path, see UsersClient.UpdatePassword.
type UserUpdateRequest struct {
	FirstName *string   `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Email     *string   `json:"email,omitempty"     yaml:"email,omitempty"`
	Role      *UserRole `json:"role,omitempty"      yaml:"role,omitempty"`
	Metadata  Metadata  `json:"metadata,omitempty"  yaml:"metadata,omitempty"`
}

// Machine represents an activated machine bound to a license.
type Machine struct {
	Resource

	Attributes    MachineAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships MachineRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// MachineAttributes are the machine's typed attributes.
type MachineAttributes struct {
	Fingerprint       string          `json:"fingerprint"                 yaml:"fingerprint"`
	Name              string          `json:"name,omitempty"              yaml:"name,omitempty"`
	IP                string          `json:"ip,omitempty"                yaml:"ip,omitempty"`
	Hostname          string          `json:"hostname,omitempty"          yaml:"hostname,omitempty"`
	Platform          string          `json:"platform,omitempty"          yaml:"platform,omitempty"`
	Cores             *int            `json:"cores,omitempty"             yaml:"cores,omitempty"`
	MaxProcesses      *int            `json:"maxProcesses,omitempty"      yaml:"maxProcesses,omitempty"`
	RequireHeartbeat  bool            `json:"requireHeartbeat"            yaml:"requireHeartbeat"`
	HeartbeatStatus   HeartbeatStatus `json:"heartbeatStatus,omitempty"   yaml:"heartbeatStatus,omitempty"`
	HeartbeatDuration *int            `json:"heartbeatDuration,omitempty" yaml:"heartbeatDuration,omitempty"`
	LastHeartbeat     *time.Time      `json:"lastHeartbeat,omitempty"     yaml:"lastHeartbeat,omitempty"`
	NextHeartbeat     *time.Time      `json:"nextHeartbeat,omitempty"     yaml:"nextHeartbeat,omitempty"`
	Metadata          Metadata        `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
	Created           time.Time       `json:"created"                     yaml:"created"`
	Updated           time.Time       `json:"updated"                     yaml:"updated"`
}

// MachineRelationships are the machine's typed relationships.
type MachineRelationships struct {
	License Relationship `json:"license,omitempty" yaml:"license,omitempty"`
	Owner   Relationship `json:"owner,omitempty"   yaml:"owner,omitempty"`
	Group   Relationship `json:"group,omitempty"   yaml:"group,omitempty"`
	Product Relationship `json:"product,omitempty" yaml:"product,omitempty"`
}

// MachineCreateRequest represents a request to activate a machine.
type MachineCreateRequest struct {
	// Fingerprint is the unique hardware/installation identifier the machine
	// is keyed by. Required.
	Fingerprint string   `json:"fingerprint"            yaml:"fingerprint"`
	Name        string   `json:"name,omitempty"         yaml:"name,omitempty"`
	IP          string   `json:"ip,omitempty"           yaml:"ip,omitempty"`
	Hostname    string   `json:"hostname,omitempty"     yaml:"hostname,omitempty"`
	Platform    string   `json:"platform,omitempty"     yaml:"platform,omitempty"`
	Cores       *int     `json:"cores,omitempty"        yaml:"cores,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"     yaml:"metadata,omitempty"`

	// LicenseID binds the machine to a license. Required.
	LicenseID string `json:"-" yaml:"-"`
	// OwnerID optionally assigns the owning user.
	OwnerID string `json:"-" yaml:"-"`
	// GroupID optionally places the machine in a group.
	GroupID string `json:"-" yaml:"-"`
}

// MachineUpdateRequest represents a partial machine update; nil fields are
// left unchanged.
type MachineUpdateRequest struct {
	Name     *string  `json:"name,omitempty"     yaml:"name,omitempty"`
	IP       *string  `json:"ip,omitempty"       yaml:"ip,omitempty"`
	Hostname *string  `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Platform *string  `json:"platform,omitempty" yaml:"platform,omitempty"`
	Cores    *int     `json:"cores,omitempty"    yaml:"cores,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Product represents a sellable product licenses are issued for.
type Product struct {
	Resource

	Attributes ProductAttributes `json:"attributes" yaml:"attributes"`
}

// ProductAttributes are the product's typed attributes.
type ProductAttributes struct {
	Name                 string               `json:"name"                           yaml:"name"`
	Code                 string               `json:"code,omitempty"                 yaml:"code,omitempty"`
	DistributionStrategy DistributionStrategy `json:"distributionStrategy,omitempty" yaml:"distributionStrategy,omitempty"`
	URL                  string               `json:"url,omitempty"                  yaml:"url,omitempty"`
	Platforms            []string             `json:"platforms,omitempty"            yaml:"platforms,omitempty"`
	Metadata             Metadata             `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
	Created              time.Time            `json:"created"                        yaml:"created"`
	Updated              time.Time            `json:"updated"                        yaml:"updated"`
}

// ProductCreateRequest represents a request to create a product.
type ProductCreateRequest struct {
	Name                 string               `json:"name"                           yaml:"name"`
	Code                 string               `json:"code,omitempty"                 yaml:"code,omitempty"`
	DistributionStrategy DistributionStrategy `json:"distributionStrategy,omitempty" yaml:"distributionStrategy,omitempty"`
	URL                  string               `json:"url,omitempty"                  yaml:"url,omitempty"`
	Platforms            []string             `json:"platforms,omitempty"            yaml:"platforms,omitempty"`
	Metadata             Metadata             `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// ProductUpdateRequest represents a partial product update; nil fields are
// left unchanged.
type ProductUpdateRequest struct {
	Name                 *string               `json:"name,omitempty"                 yaml:"name,omitempty"`
	Code                 *string               `json:"code,omitempty"                 yaml:"code,omitempty"`
	DistributionStrategy *DistributionStrategy `json:"distributionStrategy,omitempty" yaml:"distributionStrategy,omitempty"`
	URL                  *string               `json:"url,omitempty"                  yaml:"url,omitempty"`
	Platforms            []string              `json:"platforms,omitempty"            yaml:"platforms,omitempty"`
	Metadata             Metadata              `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// Policy represents the rule set licenses are issued under.
type Policy struct {
	Resource

	Attributes    PolicyAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships PolicyRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// PolicyAttributes are the policy's typed attributes. The strategy fields
// are closed enumerations passed through verbatim.
type PolicyAttributes struct {
	Name                          string                        `json:"name"                                    yaml:"name"`
	Duration                      *int64                        `json:"duration,omitempty"                      yaml:"duration,omitempty"`
	Scheme                        Scheme                        `json:"scheme,omitempty"                        yaml:"scheme,omitempty"`
	Strict                        bool                          `json:"strict"                                  yaml:"strict"`
	Floating                      bool                          `json:"floating"                                yaml:"floating"`
	Encrypted                     bool                          `json:"encrypted"                               yaml:"encrypted"`
	Protected                     bool                          `json:"protected"                               yaml:"protected"`
	UsePool                       bool                          `json:"usePool"                                 yaml:"usePool"`
	MaxMachines                   *int                          `json:"maxMachines,omitempty"                   yaml:"maxMachines,omitempty"`
	MaxProcesses                  *int                          `json:"maxProcesses,omitempty"                  yaml:"maxProcesses,omitempty"`
	MaxCores                      *int                          `json:"maxCores,omitempty"                      yaml:"maxCores,omitempty"`
	MaxUses                       *int                          `json:"maxUses,omitempty"                       yaml:"maxUses,omitempty"`
	RequireCheckIn                bool                          `json:"requireCheckIn"                          yaml:"requireCheckIn"`
	CheckInInterval               string                        `json:"checkInInterval,omitempty"               yaml:"checkInInterval,omitempty"`
	CheckInIntervalCount          *int                          `json:"checkInIntervalCount,omitempty"          yaml:"checkInIntervalCount,omitempty"`
	RequireHeartbeat              bool                          `json:"requireHeartbeat"                        yaml:"requireHeartbeat"`
	HeartbeatDuration             *int                          `json:"heartbeatDuration,omitempty"             yaml:"heartbeatDuration,omitempty"`
	HeartbeatCullStrategy         HeartbeatCullStrategy         `json:"heartbeatCullStrategy,omitempty"         yaml:"heartbeatCullStrategy,omitempty"`
	HeartbeatResurrectionStrategy HeartbeatResurrectionStrategy `json:"heartbeatResurrectionStrategy,omitempty" yaml:"heartbeatResurrectionStrategy,omitempty"`
	HeartbeatBasis                HeartbeatBasis                `json:"heartbeatBasis,omitempty"                yaml:"heartbeatBasis,omitempty"`
	MachineUniquenessStrategy     UniquenessStrategy            `json:"machineUniquenessStrategy,omitempty"     yaml:"machineUniquenessStrategy,omitempty"`
	MachineMatchingStrategy       MatchingStrategy              `json:"machineMatchingStrategy,omitempty"       yaml:"machineMatchingStrategy,omitempty"`
	ComponentUniquenessStrategy   UniquenessStrategy            `json:"componentUniquenessStrategy,omitempty"   yaml:"componentUniquenessStrategy,omitempty"`
	ComponentMatchingStrategy     MatchingStrategy              `json:"componentMatchingStrategy,omitempty"     yaml:"componentMatchingStrategy,omitempty"`
	ExpirationStrategy            ExpirationStrategy            `json:"expirationStrategy,omitempty"            yaml:"expirationStrategy,omitempty"`
	ExpirationBasis               ExpirationBasis               `json:"expirationBasis,omitempty"               yaml:"expirationBasis,omitempty"`
	RenewalBasis                  RenewalBasis                  `json:"renewalBasis,omitempty"                  yaml:"renewalBasis,omitempty"`
	TransferStrategy              TransferStrategy              `json:"transferStrategy,omitempty"              yaml:"transferStrategy,omitempty"`
	AuthenticationStrategy        AuthenticationStrategy        `json:"authenticationStrategy,omitempty"        yaml:"authenticationStrategy,omitempty"`
	MachineLeasingStrategy        LeasingStrategy               `json:"machineLeasingStrategy,omitempty"        yaml:"machineLeasingStrategy,omitempty"`
	ProcessLeasingStrategy        LeasingStrategy               `json:"processLeasingStrategy,omitempty"        yaml:"processLeasingStrategy,omitempty"`
	OverageStrategy               OverageStrategy               `json:"overageStrategy,omitempty"               yaml:"overageStrategy,omitempty"`
	Metadata                      Metadata                      `json:"metadata,omitempty"                      yaml:"metadata,omitempty"`
	Created                       time.Time                     `json:"created"                                 yaml:"created"`
	Updated                       time.Time                     `json:"updated"                                 yaml:"updated"`
}

// PolicyRelationships are the policy's typed relationships.
type PolicyRelationships struct {
	Product Relationship `json:"product,omitempty" yaml:"product,omitempty"`
}

// PolicyCreateRequest represents a request to create a policy.
type PolicyCreateRequest struct {
	Name                          string                        `json:"name"                                    yaml:"name"`
	Duration                      *int64                        `json:"duration,omitempty"                      yaml:"duration,omitempty"`
	Scheme                        Scheme                        `json:"scheme,omitempty"                        yaml:"scheme,omitempty"`
	Strict                        *bool                         `json:"strict,omitempty"                        yaml:"strict,omitempty"`
	Floating                      *bool                         `json:"floating,omitempty"                      yaml:"floating,omitempty"`
	Encrypted                     *bool                         `json:"encrypted,omitempty"                     yaml:"encrypted,omitempty"`
	Protected                     *bool                         `json:"protected,omitempty"                     yaml:"protected,omitempty"`
	UsePool                       *bool                         `json:"usePool,omitempty"                       yaml:"usePool,omitempty"`
	MaxMachines                   *int                          `json:"maxMachines,omitempty"                   yaml:"maxMachines,omitempty"`
	MaxProcesses                  *int                          `json:"maxProcesses,omitempty"                  yaml:"maxProcesses,omitempty"`
	MaxCores                      *int                          `json:"maxCores,omitempty"                      yaml:"maxCores,omitempty"`
	MaxUses                       *int                          `json:"maxUses,omitempty"                       yaml:"maxUses,omitempty"`
	RequireCheckIn                *bool                         `json:"requireCheckIn,omitempty"                yaml:"requireCheckIn,omitempty"`
	CheckInInterval               string                        `json:"checkInInterval,omitempty"               yaml:"checkInInterval,omitempty"`
	CheckInIntervalCount          *int                          `json:"checkInIntervalCount,omitempty"          yaml:"checkInIntervalCount,omitempty"`
	RequireHeartbeat              *bool                         `json:"requireHeartbeat,omitempty"              yaml:"requireHeartbeat,omitempty"`
	HeartbeatDuration             *int                          `json:"heartbeatDuration,omitempty"             yaml:"heartbeatDuration,omitempty"`
	HeartbeatCullStrategy         HeartbeatCullStrategy         `json:"heartbeatCullStrategy,omitempty"         yaml:"heartbeatCullStrategy,omitempty"`
	HeartbeatResurrectionStrategy HeartbeatResurrectionStrategy `json:"heartbeatResurrectionStrategy,omitempty" yaml:"heartbeatResurrectionStrategy,omitempty"`
	HeartbeatBasis                HeartbeatBasis                `json:"heartbeatBasis,omitempty"                yaml:"heartbeatBasis,omitempty"`
	MachineUniquenessStrategy     UniquenessStrategy            `json:"machineUniquenessStrategy,omitempty"     yaml:"machineUniquenessStrategy,omitempty"`
	MachineMatchingStrategy       MatchingStrategy              `json:"machineMatchingStrategy,omitempty"       yaml:"machineMatchingStrategy,omitempty"`
	ComponentUniquenessStrategy   UniquenessStrategy            `json:"componentUniquenessStrategy,omitempty"   yaml:"componentUniquenessStrategy,omitempty"`
	ComponentMatchingStrategy     MatchingStrategy              `json:"componentMatchingStrategy,omitempty"     yaml:"componentMatchingStrategy,omitempty"`
	ExpirationStrategy            ExpirationStrategy            `json:"expirationStrategy,omitempty"            yaml:"expirationStrategy,omitempty"`
	ExpirationBasis               ExpirationBasis               `json:"expirationBasis,omitempty"               yaml:"expirationBasis,omitempty"`
	RenewalBasis                  RenewalBasis                  `json:"renewalBasis,omitempty"                  yaml:"renewalBasis,omitempty"`
	TransferStrategy              TransferStrategy              `json:"transferStrategy,omitempty"              yaml:"transferStrategy,omitempty"`
	AuthenticationStrategy        AuthenticationStrategy        `json:"authenticationStrategy,omitempty"        yaml:"authenticationStrategy,omitempty"`
	MachineLeasingStrategy        LeasingStrategy               `json:"machineLeasingStrategy,omitempty"        yaml:"machineLeasingStrategy,omitempty"`
	ProcessLeasingStrategy        LeasingStrategy               `json:"processLeasingStrategy,omitempty"        yaml:"processLeasingStrategy,omitempty"`
	OverageStrategy               OverageStrategy               `json:"overageStrategy,omitempty"               yaml:"overageStrategy,omitempty"`
	Metadata                      Metadata                      `json:"metadata,omitempty"                      yaml:"metadata,omitempty"`

	// ProductID binds the policy to a product. Required.
	ProductID string `json:"-" yaml:"-"`
}

// PolicyUpdateRequest represents a partial policy update; nil fields are
// left unchanged.
type PolicyUpdateRequest struct {
	Name                 *string         `json:"name,omitempty"                 yaml:"name,omitempty"`
	Duration             *int64          `json:"duration,omitempty"             yaml:"duration,omitempty"`
	Strict               *bool           `json:"strict,omitempty"               yaml:"strict,omitempty"`
	Floating             *bool           `json:"floating,omitempty"             yaml:"floating,omitempty"`
	Protected            *bool           `json:"protected,omitempty"            yaml:"protected,omitempty"`
	MaxMachines          *int            `json:"maxMachines,omitempty"          yaml:"maxMachines,omitempty"`
	MaxProcesses         *int            `json:"maxProcesses,omitempty"         yaml:"maxProcesses,omitempty"`
	MaxCores             *int            `json:"maxCores,omitempty"             yaml:"maxCores,omitempty"`
	MaxUses              *int            `json:"maxUses,omitempty"              yaml:"maxUses,omitempty"`
	RequireCheckIn       *bool           `json:"requireCheckIn,omitempty"       yaml:"requireCheckIn,omitempty"`
	CheckInInterval      *string         `json:"checkInInterval,omitempty"      yaml:"checkInInterval,omitempty"`
	CheckInIntervalCount *int            `json:"checkInIntervalCount,omitempty" yaml:"checkInIntervalCount,omitempty"`
	RequireHeartbeat     *bool           `json:"requireHeartbeat,omitempty"     yaml:"requireHeartbeat,omitempty"`
	HeartbeatDuration    *int            `json:"heartbeatDuration,omitempty"    yaml:"heartbeatDuration,omitempty"`
	ExpirationStrategy   *ExpirationStrategy `json:"expirationStrategy,omitempty" yaml:"expirationStrategy,omitempty"`
	RenewalBasis         *RenewalBasis   `json:"renewalBasis,omitempty"         yaml:"renewalBasis,omitempty"`
	OverageStrategy      *OverageStrategy `json:"overageStrategy,omitempty"     yaml:"overageStrategy,omitempty"`
	Metadata             Metadata        `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// Group represents a named collection of users, licenses, and machines with
// shared resource limits.
type Group struct {
	Resource

	Attributes GroupAttributes `json:"attributes" yaml:"attributes"`
}

// GroupAttributes are the group's typed attributes.
type GroupAttributes struct {
	Name        string    `json:"name"                  yaml:"name"`
	MaxUsers    *int      `json:"maxUsers,omitempty"    yaml:"maxUsers,omitempty"`
	MaxLicenses *int      `json:"maxLicenses,omitempty" yaml:"maxLicenses,omitempty"`
	MaxMachines *int      `json:"maxMachines,omitempty" yaml:"maxMachines,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
	Created     time.Time `json:"created"               yaml:"created"`
	Updated     time.Time `json:"updated"               yaml:"updated"`
}

// GroupCreateRequest represents a request to create a group.
type GroupCreateRequest struct {
	Name        string   `json:"name"                  yaml:"name"`
	MaxUsers    *int     `json:"maxUsers,omitempty"    yaml:"maxUsers,omitempty"`
	MaxLicenses *int     `json:"maxLicenses,omitempty" yaml:"maxLicenses,omitempty"`
	MaxMachines *int     `json:"maxMachines,omitempty" yaml:"maxMachines,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// GroupUpdateRequest represents a partial group update; nil fields are left
// unchanged.
type GroupUpdateRequest struct {
	Name        *string  `json:"name,omitempty"        yaml:"name,omitempty"`
	MaxUsers    *int     `json:"maxUsers,omitempty"    yaml:"maxUsers,omitempty"`
	MaxLicenses *int     `json:"maxLicenses,omitempty" yaml:"maxLicenses,omitempty"`
	MaxMachines *int     `json:"maxMachines,omitempty" yaml:"maxMachines,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// Entitlement represents a named capability licenses can be entitled to.
type Entitlement struct {
	Resource

	Attributes    EntitlementAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships EntitlementRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// EntitlementAttributes are the entitlement's typed attributes.
type EntitlementAttributes struct {
	Name     string    `json:"name"               yaml:"name"`
	Code     string    `json:"code"               yaml:"code"`
	Metadata Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Created  time.Time `json:"created"            yaml:"created"`
	Updated  time.Time `json:"updated"            yaml:"updated"`
}

// EntitlementRelationships are the entitlement's typed relationships.
type EntitlementRelationships struct {
	Licenses ToManyRelationship `json:"licenses,omitempty" yaml:"licenses,omitempty"`
}

// EntitlementCreateRequest represents a request to create an entitlement.
type EntitlementCreateRequest struct {
	Name     string   `json:"name"               yaml:"name"`
	Code     string   `json:"code"               yaml:"code"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EntitlementUpdateRequest represents a partial entitlement update; nil
// fields are left unchanged.
type EntitlementUpdateRequest struct {
	Name     *string  `json:"name,omitempty"     yaml:"name,omitempty"`
	Code     *string  `json:"code,omitempty"     yaml:"code,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ProcessStatus is a process heartbeat state.
type ProcessStatus string

// Process states.
const (
	ProcessAlive ProcessStatus = "ALIVE"
	ProcessDead  ProcessStatus = "DEAD"
)

// Process represents a running process leased against a machine.
type Process struct {
	Resource

	Attributes    ProcessAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships ProcessRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ProcessAttributes are the process's typed attributes.
type ProcessAttributes struct {
	Pid           string        `json:"pid"                     yaml:"pid"`
	Status        ProcessStatus `json:"status,omitempty"        yaml:"status,omitempty"`
	Interval      *int          `json:"interval,omitempty"      yaml:"interval,omitempty"`
	LastHeartbeat *time.Time    `json:"lastHeartbeat,omitempty" yaml:"lastHeartbeat,omitempty"`
	NextHeartbeat *time.Time    `json:"nextHeartbeat,omitempty" yaml:"nextHeartbeat,omitempty"`
	Metadata      Metadata      `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
	Created       time.Time     `json:"created"                 yaml:"created"`
	Updated       time.Time     `json:"updated"                 yaml:"updated"`
}

// ProcessRelationships are the process's typed relationships.
type ProcessRelationships struct {
	Machine Relationship `json:"machine,omitempty" yaml:"machine,omitempty"`
	License Relationship `json:"license,omitempty" yaml:"license,omitempty"`
}

// ProcessCreateRequest represents a request to spawn a process lease.
type ProcessCreateRequest struct {
	Pid      string   `json:"pid"                yaml:"pid"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// MachineID binds the process to an activated machine. Required.
	MachineID string `json:"-" yaml:"-"`
}

// ProcessUpdateRequest represents a partial process update; nil fields are
// left unchanged.
type ProcessUpdateRequest struct {
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Component represents a hardware component fingerprinted alongside a
// machine for matching-strategy checks.
type Component struct {
	Resource

	Attributes    ComponentAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships ComponentRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ComponentAttributes are the component's typed attributes.
type ComponentAttributes struct {
	Fingerprint string    `json:"fingerprint"        yaml:"fingerprint"`
	Name        string    `json:"name"               yaml:"name"`
	Metadata    Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Created     time.Time `json:"created"            yaml:"created"`
	Updated     time.Time `json:"updated"            yaml:"updated"`
}

// ComponentRelationships are the component's typed relationships.
type ComponentRelationships struct {
	Machine Relationship `json:"machine,omitempty" yaml:"machine,omitempty"`
	License Relationship `json:"license,omitempty" yaml:"license,omitempty"`
}

// ComponentCreateRequest represents a request to register a component.
type ComponentCreateRequest struct {
	Fingerprint string   `json:"fingerprint"        yaml:"fingerprint"`
	Name        string   `json:"name"               yaml:"name"`
	Metadata    Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// MachineID binds the component to an activated machine. Required.
	MachineID string `json:"-" yaml:"-"`
}

// ComponentUpdateRequest represents a partial component update; nil fields
// are left unchanged.
type ComponentUpdateRequest struct {
	Name     *string  `json:"name,omitempty"     yaml:"name,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Webhook represents a webhook endpoint subscribed to account events.
type Webhook struct {
	Resource

	Attributes WebhookAttributes `json:"attributes" yaml:"attributes"`
}

// WebhookAttributes are the webhook endpoint's typed attributes.
type WebhookAttributes struct {
	URL                string    `json:"url"                          yaml:"url"`
	Subscriptions      []string  `json:"subscriptions"                yaml:"subscriptions"`
	SignatureAlgorithm string    `json:"signatureAlgorithm,omitempty" yaml:"signatureAlgorithm,omitempty"`
	APIVersion         string    `json:"apiVersion,omitempty"         yaml:"apiVersion,omitempty"`
	Created            time.Time `json:"created"                      yaml:"created"`
	Updated            time.Time `json:"updated"                      yaml:"updated"`
}

// WebhookCreateRequest represents a request to register a webhook endpoint.
type WebhookCreateRequest struct {
	// URL is the HTTPS endpoint events are delivered to. Required.
	URL string `json:"url" yaml:"url"`
	// Subscriptions lists the event identifiers to deliver; see AllEvents.
	Subscriptions      []string `json:"subscriptions,omitempty"      yaml:"subscriptions,omitempty"`
	SignatureAlgorithm string   `json:"signatureAlgorithm,omitempty" yaml:"signatureAlgorithm,omitempty"`
	APIVersion         string   `json:"apiVersion,omitempty"         yaml:"apiVersion,omitempty"`
}

// WebhookUpdateRequest represents a partial webhook update; nil fields are
// left unchanged.
type WebhookUpdateRequest struct {
	URL                *string  `json:"url,omitempty"                yaml:"url,omitempty"`
	Subscriptions      []string `json:"subscriptions,omitempty"      yaml:"subscriptions,omitempty"`
	SignatureAlgorithm *string  `json:"signatureAlgorithm,omitempty" yaml:"signatureAlgorithm,omitempty"`
	APIVersion         *string  `json:"apiVersion,omitempty"         yaml:"apiVersion,omitempty"`
}

// RequestLog is a server-side record of one API request. Read-only.
type RequestLog struct {
	Resource

	Attributes RequestLogAttributes `json:"attributes" yaml:"attributes"`
}

// RequestLogAttributes are the request log's typed attributes.
type RequestLogAttributes struct {
	Method            string    `json:"method"                      yaml:"method"`
	URL               string    `json:"url"                         yaml:"url"`
	Status            string    `json:"status,omitempty"            yaml:"status,omitempty"`
	IP                string    `json:"ip,omitempty"                yaml:"ip,omitempty"`
	UserAgent         string    `json:"userAgent,omitempty"         yaml:"userAgent,omitempty"`
	RequestBody       string    `json:"requestBody,omitempty"       yaml:"requestBody,omitempty"`
	ResponseBody      string    `json:"responseBody,omitempty"      yaml:"responseBody,omitempty"`
	ResponseSignature string    `json:"responseSignature,omitempty" yaml:"responseSignature,omitempty"`
	Created           time.Time `json:"created"                     yaml:"created"`
	Updated           time.Time `json:"updated"                     yaml:"updated"`
}

// EventLog is a server-side record of one emitted event. Read-only.
type EventLog struct {
	Resource

	Attributes    EventLogAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships EventLogRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// EventLogAttributes are the event log's typed attributes.
type EventLogAttributes struct {
	Event            string    `json:"event"                      yaml:"event"`
	IdempotencyToken string    `json:"idempotencyToken,omitempty" yaml:"idempotencyToken,omitempty"`
	Metadata         Metadata  `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
	Created          time.Time `json:"created"                    yaml:"created"`
	Updated          time.Time `json:"updated"                    yaml:"updated"`
}

// EventLogRelationships are the event log's typed relationships. Resource is
// polymorphic: its identifier's type names the kind the event concerns.
type EventLogRelationships struct {
	Resource   Relationship `json:"resource,omitempty"   yaml:"resource,omitempty"`
	Whodunnit  Relationship `json:"whodunnit,omitempty"  yaml:"whodunnit,omitempty"`
	RequestLog Relationship `json:"request-log,omitempty" yaml:"request-log,omitempty"`
}

// Token represents an issued bearer token.
type Token struct {
	Resource

	Attributes    TokenAttributes    `json:"attributes"              yaml:"attributes"`
	Relationships TokenRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// TokenAttributes are the token's typed attributes. Token is only populated
// on generation responses; reads return a redacted value.
type TokenAttributes struct {
	Kind    TokenKind  `json:"kind"             yaml:"kind"`
	Token   string     `json:"token,omitempty"  yaml:"token,omitempty"`
	Name    string     `json:"name,omitempty"   yaml:"name,omitempty"`
	Expiry  *time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	Created time.Time  `json:"created"          yaml:"created"`
	Updated time.Time  `json:"updated"          yaml:"updated"`
}

// TokenRelationships are the token's typed relationships. Bearer points at
// the user or product the token authenticates as.
type TokenRelationships struct {
	Account Relationship `json:"account,omitempty" yaml:"account,omitempty"`
	Bearer  Relationship `json:"bearer,omitempty"  yaml:"bearer,omitempty"`
}

// DashboardCounts is the analytics summary used by dashboard landing pages.
// Degraded reports that the per-resource fallback produced the counts.
type DashboardCounts struct {
	ActiveLicenses      int  `json:"activeLicenses"      yaml:"activeLicenses"`
	TotalLicenses       int  `json:"totalLicenses"       yaml:"totalLicenses"`
	TotalUsers          int  `json:"totalUsers"          yaml:"totalUsers"`
	TotalMachines       int  `json:"totalMachines"       yaml:"totalMachines"`
	ActiveLicensedUsers int  `json:"activeLicensedUsers" yaml:"activeLicensedUsers"`
	Degraded            bool `json:"-"                   yaml:"-"`
}
