package keyline

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PageOptions selects one page of a list. Zero fields are omitted from the
// encoded query and the server applies its defaults.
type PageOptions struct {
	Size   int `json:"size,omitempty"   yaml:"size,omitempty"`
	Number int `json:"number,omitempty" yaml:"number,omitempty"`
}

// ListOptions are the pagination and include parameters shared by every
// list call. Kind-specific option structs embed it ahead of their filters.
type ListOptions struct {
	Page    PageOptions `json:"page,omitempty"    yaml:"page,omitempty"`
	Limit   int         `json:"limit,omitempty"   yaml:"limit,omitempty"`
	Include []string    `json:"include,omitempty" yaml:"include,omitempty"`
}

// appendTo appends the shared parameters after any kind filters, keeping
// the canonical tail order: include, page[size], page[number], limit.
func (o ListOptions) appendTo(query *Query) {
	query.Include(o.Include...)
	query.Page(o.Page)
	query.Limit(o.Limit)
}

// DateWindow bounds a date-filtered list to [Start, End]. Zero ends are
// omitted, so an open-ended window encodes only the bound that is set.
type DateWindow struct {
	Start time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End   time.Time `json:"end,omitempty"   yaml:"end,omitempty"`
}

// IsZero reports whether neither bound is set.
func (w DateWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

type queryPair struct {
	key   string
	value string
}

// Query builds a query string pair by pair, preserving append order.
// Encoding the same sequence of calls always yields a byte-identical
// string, which keeps list URLs stable across runs for audit logs and
// test fixtures. Empty values are skipped rather than encoded as "" or
// a literal "null".
type Query struct {
	pairs []queryPair
}

// NewQuery creates an empty query builder.
func NewQuery() *Query {
	return &Query{}
}

// Add appends a raw key/value pair. The key is emitted verbatim; the value
// is escaped on Encode. Empty values are dropped.
func (q *Query) Add(key, value string) *Query {
	if value == "" {
		return q
	}

	q.pairs = append(q.pairs, queryPair{key: key, value: value})

	return q
}

// Filter appends filter[field]=value.
func (q *Query) Filter(field, value string) *Query {
	return q.Add("filter["+field+"]", value)
}

// FilterEach appends filter[field]=v once per value. Array filters repeat
// the key on the wire instead of joining values.
func (q *Query) FilterEach(field string, values ...string) *Query {
	for _, value := range values {
		q.Filter(field, value)
	}

	return q
}

// FilterSub appends filter[field][sub]=value for nested filter forms such
// as date windows.
func (q *Query) FilterSub(field, sub, value string) *Query {
	return q.Add("filter["+field+"]["+sub+"]", value)
}

// FilterWindow appends filter[field][start] and filter[field][end] for the
// set bounds of the window, formatted as RFC 3339.
func (q *Query) FilterWindow(field string, window DateWindow) *Query {
	if !window.Start.IsZero() {
		q.FilterSub(field, "start", window.Start.UTC().Format(time.RFC3339))
	}

	if !window.End.IsZero() {
		q.FilterSub(field, "end", window.End.UTC().Format(time.RFC3339))
	}

	return q
}

// FilterMetadata appends filter[metadata][key]=value for every entry.
// Keys are emitted in sorted order so the encoding does not depend on map
// insertion history.
func (q *Query) FilterMetadata(metadata Metadata) *Query {
	if len(metadata) == 0 {
		return q
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value := formatQueryValue(metadata[key])
		if value == "" {
			continue
		}

		q.Add("filter[metadata]["+url.QueryEscape(key)+"]", value)
	}

	return q
}

// Include appends include=a,b,c (comma-joined, single key).
func (q *Query) Include(names ...string) *Query {
	if len(names) == 0 {
		return q
	}

	return q.Add("include", strings.Join(names, ","))
}

// Page appends page[size] and page[number] for the set fields.
func (q *Query) Page(page PageOptions) *Query {
	if page.Size > 0 {
		q.Add("page[size]", strconv.Itoa(page.Size))
	}

	if page.Number > 0 {
		q.Add("page[number]", strconv.Itoa(page.Number))
	}

	return q
}

// Limit appends limit=n for top-N fetches.
func (q *Query) Limit(limit int) *Query {
	if limit > 0 {
		q.Add("limit", strconv.Itoa(limit))
	}

	return q
}

// Len returns the number of appended pairs.
func (q *Query) Len() int {
	return len(q.pairs)
}

// Encode renders the accumulated pairs in append order. Keys keep their
// literal bracket form; values are percent-escaped.
func (q *Query) Encode() string {
	if len(q.pairs) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, pair := range q.pairs {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(pair.key)
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(pair.value))
	}

	return builder.String()
}

// formatQueryValue renders a metadata filter value. Nil values are dropped
// entirely rather than encoded as "null".
func formatQueryValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// LicenseListOptions filter license lists. Filter fields encode in
// declaration order, metadata keys in sorted order.
type LicenseListOptions struct {
	ListOptions

	Status    LicenseStatus `json:"status,omitempty"    yaml:"status,omitempty"`
	UserID    string        `json:"user,omitempty"      yaml:"user,omitempty"`
	OwnerID   string        `json:"owner,omitempty"     yaml:"owner,omitempty"`
	PolicyID  string        `json:"policy,omitempty"    yaml:"policy,omitempty"`
	GroupID   string        `json:"group,omitempty"     yaml:"group,omitempty"`
	ProductID string        `json:"product,omitempty"   yaml:"product,omitempty"`
	MachineID string        `json:"machine,omitempty"   yaml:"machine,omitempty"`
	Suspended *bool         `json:"suspended,omitempty" yaml:"suspended,omitempty"`
	Expiry    DateWindow    `json:"expiry,omitempty"    yaml:"expiry,omitempty"`
	Metadata  Metadata      `json:"metadata,omitempty"  yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *LicenseListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("status", string(o.Status)).
		Filter("user", o.UserID).
		Filter("owner", o.OwnerID).
		Filter("policy", o.PolicyID).
		Filter("group", o.GroupID).
		Filter("product", o.ProductID).
		Filter("machine", o.MachineID)

	if o.Suspended != nil {
		query.Filter("suspended", strconv.FormatBool(*o.Suspended))
	}

	query.FilterWindow("expiry", o.Expiry)
	query.FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// UserListOptions filter user lists.
type UserListOptions struct {
	ListOptions

	Status    UserStatus `json:"status,omitempty"   yaml:"status,omitempty"`
	Roles     []UserRole `json:"roles,omitempty"    yaml:"roles,omitempty"`
	Assigned  *bool      `json:"assigned,omitempty" yaml:"assigned,omitempty"`
	GroupID   string     `json:"group,omitempty"    yaml:"group,omitempty"`
	ProductID string     `json:"product,omitempty"  yaml:"product,omitempty"`
	Email     string     `json:"email,omitempty"    yaml:"email,omitempty"`
	Metadata  Metadata   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *UserListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("status", string(o.Status))

	for _, role := range o.Roles {
		query.Filter("roles", string(role))
	}

	if o.Assigned != nil {
		query.Filter("assigned", strconv.FormatBool(*o.Assigned))
	}

	query.
		Filter("group", o.GroupID).
		Filter("product", o.ProductID).
		Filter("email", o.Email).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// MachineListOptions filter machine lists.
type MachineListOptions struct {
	ListOptions

	LicenseID       string          `json:"license,omitempty"         yaml:"license,omitempty"`
	OwnerID         string          `json:"owner,omitempty"           yaml:"owner,omitempty"`
	GroupID         string          `json:"group,omitempty"           yaml:"group,omitempty"`
	ProductID       string          `json:"product,omitempty"         yaml:"product,omitempty"`
	PolicyID        string          `json:"policy,omitempty"          yaml:"policy,omitempty"`
	Fingerprint     string          `json:"fingerprint,omitempty"     yaml:"fingerprint,omitempty"`
	HeartbeatStatus HeartbeatStatus `json:"heartbeatStatus,omitempty" yaml:"heartbeatStatus,omitempty"`
	Metadata        Metadata        `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *MachineListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("license", o.LicenseID).
		Filter("owner", o.OwnerID).
		Filter("group", o.GroupID).
		Filter("product", o.ProductID).
		Filter("policy", o.PolicyID).
		Filter("fingerprint", o.Fingerprint).
		Filter("heartbeatStatus", string(o.HeartbeatStatus)).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// ProductListOptions filter product lists.
type ProductListOptions struct {
	ListOptions

	DistributionStrategy DistributionStrategy `json:"distributionStrategy,omitempty" yaml:"distributionStrategy,omitempty"`
	Metadata             Metadata             `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *ProductListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("distributionStrategy", string(o.DistributionStrategy)).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// PolicyListOptions filter policy lists.
type PolicyListOptions struct {
	ListOptions

	ProductID string   `json:"product,omitempty"  yaml:"product,omitempty"`
	Scheme    Scheme   `json:"scheme,omitempty"   yaml:"scheme,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *PolicyListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("product", o.ProductID).
		Filter("scheme", string(o.Scheme)).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// GroupListOptions filter group lists.
type GroupListOptions struct {
	ListOptions

	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *GroupListOptions) EncodeQuery() string {
	query := NewQuery().
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// EntitlementListOptions filter entitlement lists.
type EntitlementListOptions struct {
	ListOptions

	Code     string   `json:"code,omitempty"     yaml:"code,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *EntitlementListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("code", o.Code).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// ProcessListOptions filter process lists.
type ProcessListOptions struct {
	ListOptions

	MachineID string        `json:"machine,omitempty"  yaml:"machine,omitempty"`
	LicenseID string        `json:"license,omitempty"  yaml:"license,omitempty"`
	ProductID string        `json:"product,omitempty"  yaml:"product,omitempty"`
	Status    ProcessStatus `json:"status,omitempty"   yaml:"status,omitempty"`
	Metadata  Metadata      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *ProcessListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("machine", o.MachineID).
		Filter("license", o.LicenseID).
		Filter("product", o.ProductID).
		Filter("status", string(o.Status)).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// ComponentListOptions filter component lists.
type ComponentListOptions struct {
	ListOptions

	MachineID   string   `json:"machine,omitempty"     yaml:"machine,omitempty"`
	LicenseID   string   `json:"license,omitempty"     yaml:"license,omitempty"`
	ProductID   string   `json:"product,omitempty"     yaml:"product,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *ComponentListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("machine", o.MachineID).
		Filter("license", o.LicenseID).
		Filter("product", o.ProductID).
		Filter("fingerprint", o.Fingerprint).
		FilterMetadata(o.Metadata)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// WebhookListOptions filter webhook endpoint lists. The kind has no
// server-side filters; only the shared parameters apply.
type WebhookListOptions struct {
	ListOptions
}

// EncodeQuery implements QueryEncoder.
func (o *WebhookListOptions) EncodeQuery() string {
	query := NewQuery()
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// RequestLogListOptions filter request log lists.
type RequestLogListOptions struct {
	ListOptions

	Created DateWindow `json:"created,omitempty" yaml:"created,omitempty"`
	Method  string     `json:"method,omitempty"  yaml:"method,omitempty"`
	URL     string     `json:"url,omitempty"     yaml:"url,omitempty"`
	Status  string     `json:"status,omitempty"  yaml:"status,omitempty"`
	IP      string     `json:"ip,omitempty"      yaml:"ip,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *RequestLogListOptions) EncodeQuery() string {
	query := NewQuery().
		FilterWindow("created", o.Created).
		Filter("method", o.Method).
		Filter("url", o.URL).
		Filter("status", o.Status).
		Filter("ip", o.IP)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// EventLogListOptions filter event log lists.
type EventLogListOptions struct {
	ListOptions

	Created     DateWindow `json:"created,omitempty"   yaml:"created,omitempty"`
	Event       string     `json:"event,omitempty"     yaml:"event,omitempty"`
	ResourceID  string     `json:"resource,omitempty"  yaml:"resource,omitempty"`
	WhodunnitID string     `json:"whodunnit,omitempty" yaml:"whodunnit,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *EventLogListOptions) EncodeQuery() string {
	query := NewQuery().
		FilterWindow("created", o.Created).
		Filter("event", o.Event).
		Filter("resource", o.ResourceID).
		Filter("whodunnit", o.WhodunnitID)
	o.ListOptions.appendTo(query)

	return query.Encode()
}

// TokenListOptions filter token lists.
type TokenListOptions struct {
	ListOptions

	Kind     TokenKind `json:"kind,omitempty"   yaml:"kind,omitempty"`
	BearerID string    `json:"bearer,omitempty" yaml:"bearer,omitempty"`
}

// EncodeQuery implements QueryEncoder.
func (o *TokenListOptions) EncodeQuery() string {
	query := NewQuery().
		Filter("kind", string(o.Kind)).
		Filter("bearer", o.BearerID)
	o.ListOptions.appendTo(query)

	return query.Encode()
}
