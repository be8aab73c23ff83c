package keyline

import "strings"

// Webhook event identifiers. The set below is the complete catalog the
// server can emit; webhook subscriptions and event-log records reference
// these strings verbatim.
const (
	EventAccountUpdated = "account.updated"

	EventLicenseCreated              = "license.created"
	EventLicenseUpdated              = "license.updated"
	EventLicenseDeleted              = "license.deleted"
	EventLicenseExpiringSoon         = "license.expiring-soon"
	EventLicenseExpired              = "license.expired"
	EventLicenseSuspended            = "license.suspended"
	EventLicenseReinstated           = "license.reinstated"
	EventLicenseRenewed              = "license.renewed"
	EventLicenseRevoked              = "license.revoked"
	EventLicenseCheckedIn            = "license.checked-in"
	EventLicenseCheckInRequiredSoon  = "license.check-in-required-soon"
	EventLicenseCheckInOverdue       = "license.check-in-overdue"
	EventLicenseValidationSucceeded  = "license.validation.succeeded"
	EventLicenseValidationFailed     = "license.validation.failed"
	EventLicenseUsageIncremented     = "license.usage.incremented"
	EventLicenseUsageDecremented     = "license.usage.decremented"
	EventLicenseUsageReset           = "license.usage.reset"
	EventLicenseEntitlementsAttached = "license.entitlements.attached"
	EventLicenseEntitlementsDetached = "license.entitlements.detached"
	EventLicensePolicyUpdated        = "license.policy.updated"
	EventLicenseUserUpdated          = "license.user.updated"
	EventLicenseGroupUpdated         = "license.group.updated"

	EventUserCreated       = "user.created"
	EventUserUpdated       = "user.updated"
	EventUserDeleted       = "user.deleted"
	EventUserBanned        = "user.banned"
	EventUserUnbanned      = "user.unbanned"
	EventUserPasswordReset = "user.password-reset"
	EventUserGroupUpdated  = "user.group.updated"

	EventMachineCreated              = "machine.created"
	EventMachineUpdated              = "machine.updated"
	EventMachineDeleted              = "machine.deleted"
	EventMachineHeartbeatPing        = "machine.heartbeat.ping"
	EventMachineHeartbeatDead        = "machine.heartbeat.dead"
	EventMachineHeartbeatResurrected = "machine.heartbeat.resurrected"
	EventMachineHeartbeatReset       = "machine.heartbeat.reset"

	EventProcessCreated              = "process.created"
	EventProcessUpdated              = "process.updated"
	EventProcessDeleted              = "process.deleted"
	EventProcessHeartbeatPing        = "process.heartbeat.ping"
	EventProcessHeartbeatDead        = "process.heartbeat.dead"
	EventProcessHeartbeatResurrected = "process.heartbeat.resurrected"

	EventComponentCreated = "component.created"
	EventComponentUpdated = "component.updated"
	EventComponentDeleted = "component.deleted"

	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"

	EventPolicyCreated    = "policy.created"
	EventPolicyUpdated    = "policy.updated"
	EventPolicyDeleted    = "policy.deleted"
	EventPolicyPoolPopped = "policy.pool.popped"

	EventGroupCreated = "group.created"
	EventGroupUpdated = "group.updated"
	EventGroupDeleted = "group.deleted"

	EventEntitlementCreated = "entitlement.created"
	EventEntitlementUpdated = "entitlement.updated"
	EventEntitlementDeleted = "entitlement.deleted"

	EventTokenGenerated   = "token.generated"
	EventTokenRegenerated = "token.regenerated"
	EventTokenRevoked     = "token.revoked"
)

// allEvents is the catalog in canonical order, grouped by resource.
//
//nolint:gochecknoglobals // static catalog
var allEvents = []string{
	EventAccountUpdated,

	EventLicenseCreated,
	EventLicenseUpdated,
	EventLicenseDeleted,
	EventLicenseExpiringSoon,
	EventLicenseExpired,
	EventLicenseSuspended,
	EventLicenseReinstated,
	EventLicenseRenewed,
	EventLicenseRevoked,
	EventLicenseCheckedIn,
	EventLicenseCheckInRequiredSoon,
	EventLicenseCheckInOverdue,
	EventLicenseValidationSucceeded,
	EventLicenseValidationFailed,
	EventLicenseUsageIncremented,
	EventLicenseUsageDecremented,
	EventLicenseUsageReset,
	EventLicenseEntitlementsAttached,
	EventLicenseEntitlementsDetached,
	EventLicensePolicyUpdated,
	EventLicenseUserUpdated,
	EventLicenseGroupUpdated,

	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventUserBanned,
	EventUserUnbanned,
	EventUserPasswordReset,
	EventUserGroupUpdated,

	EventMachineCreated,
	EventMachineUpdated,
	EventMachineDeleted,
	EventMachineHeartbeatPing,
	EventMachineHeartbeatDead,
	EventMachineHeartbeatResurrected,
	EventMachineHeartbeatReset,

	EventProcessCreated,
	EventProcessUpdated,
	EventProcessDeleted,
	EventProcessHeartbeatPing,
	EventProcessHeartbeatDead,
	EventProcessHeartbeatResurrected,

	EventComponentCreated,
	EventComponentUpdated,
	EventComponentDeleted,

	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,

	EventPolicyCreated,
	EventPolicyUpdated,
	EventPolicyDeleted,
	EventPolicyPoolPopped,

	EventGroupCreated,
	EventGroupUpdated,
	EventGroupDeleted,

	EventEntitlementCreated,
	EventEntitlementUpdated,
	EventEntitlementDeleted,

	EventTokenGenerated,
	EventTokenRegenerated,
	EventTokenRevoked,
}

// AllEvents returns the full webhook event identifier catalog in canonical
// order. The returned slice is a copy.
func AllEvents() []string {
	events := make([]string, len(allEvents))
	copy(events, allEvents)

	return events
}

// EventCategory returns the leading dot-segment of an event identifier,
// e.g. "license" for "license.validation.succeeded". Identifiers without a
// dot are their own category.
func EventCategory(event string) string {
	if idx := strings.IndexByte(event, '.'); idx > 0 {
		return event[:idx]
	}

	return event
}

// EventsByCategory partitions the catalog by leading dot-segment. The
// partition is exhaustive and non-overlapping: every event the server can
// emit appears in exactly one category, in catalog order.
func EventsByCategory() map[string][]string {
	categories := make(map[string][]string)

	for _, event := range allEvents {
		category := EventCategory(event)
		categories[category] = append(categories[category], event)
	}

	return categories
}
