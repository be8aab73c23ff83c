package keyline

import "encoding/json"

// Resource is the common JSON:API resource object base embedded by every
// typed resource. Type always equals the kind's canonical string; ID is
// assigned by the server and immutable once set.
type Resource struct {
	ID    string `json:"id,omitempty"    yaml:"id,omitempty"`
	Type  string `json:"type"            yaml:"type"`
	Links Links  `json:"links,omitempty" yaml:"links,omitempty"`
}

// Links maps link names to URLs.
type Links map[string]string

// ResourceIdentifier is an {id, type} reference to a resource. It is always
// a reference, never an embedded copy.
type ResourceIdentifier struct {
	ID   string `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// RelationshipLinks carries the link pair served with a relationship.
type RelationshipLinks struct {
	Self    string `json:"self,omitempty"    yaml:"self,omitempty"`
	Related string `json:"related,omitempty" yaml:"related,omitempty"`
}

// Relationship is a to-one reference to another resource.
type Relationship struct {
	Data  *ResourceIdentifier `json:"data,omitempty"  yaml:"data,omitempty"`
	Links *RelationshipLinks  `json:"links,omitempty" yaml:"links,omitempty"`
}

// RelatedURL returns the relationship's related-resource URL, or the empty
// string when the server did not provide one.
func (r Relationship) RelatedURL() string {
	if r.Links == nil {
		return ""
	}

	return r.Links.Related
}

// ToManyRelationship is a to-many reference to other resources.
type ToManyRelationship struct {
	Data  []ResourceIdentifier `json:"data,omitempty"  yaml:"data,omitempty"`
	Links *RelationshipLinks   `json:"links,omitempty" yaml:"links,omitempty"`
}

// RelatedURL returns the relationship's related-collection URL, or the empty
// string when the server did not provide one.
func (r ToManyRelationship) RelatedURL() string {
	if r.Links == nil {
		return ""
	}

	return r.Links.Related
}

// Meta is open-shape response metadata.
type Meta map[string]interface{}

// Document wraps a single primary resource together with any side-loaded
// includes the server returned.
type Document[T any] struct {
	Data     T        `json:"data"               yaml:"data"`
	Included Included `json:"included,omitempty" yaml:"included,omitempty"`
	Meta     Meta     `json:"meta,omitempty"     yaml:"meta,omitempty"`
	Links    Links    `json:"links,omitempty"    yaml:"links,omitempty"`
}

// PageLinks holds first/last/next/prev page URLs. Absent entries mean the
// page does not exist, e.g. no prev on page one.
type PageLinks struct {
	First string `json:"first,omitempty" yaml:"first,omitempty"`
	Last  string `json:"last,omitempty"  yaml:"last,omitempty"`
	Next  string `json:"next,omitempty"  yaml:"next,omitempty"`
	Prev  string `json:"prev,omitempty"  yaml:"prev,omitempty"`
}

// ListMeta carries the total matching count (independent of page size) and
// the page link set for a list call.
type ListMeta struct {
	Count *int       `json:"count,omitempty" yaml:"count,omitempty"`
	Pages *PageLinks `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// ListResponse holds one page of resources plus list-level metadata.
type ListResponse[T any] struct {
	Data     []T      `json:"data"               yaml:"data"`
	Included Included `json:"included,omitempty" yaml:"included,omitempty"`
	Meta     ListMeta `json:"meta,omitempty"     yaml:"meta,omitempty"`
	Links    Links    `json:"links,omitempty"    yaml:"links,omitempty"`
}

// Count returns meta.count when the server provided it, falling back to the
// page length otherwise.
func (lr *ListResponse[T]) Count() int {
	if lr.Meta.Count != nil {
		return *lr.Meta.Count
	}

	return len(lr.Data)
}

// HasNext reports whether the server advertised a further page.
func (lr *ListResponse[T]) HasNext() bool {
	return lr.Meta.Pages != nil && lr.Meta.Pages.Next != ""
}

// IncludedResource is a side-loaded resource of any kind. Attributes stay
// raw until the caller switches on Type and decodes them with As.
type IncludedResource struct {
	Resource

	Attributes    json.RawMessage            `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	Relationships map[string]json.RawMessage `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// As decodes the raw attributes into the given typed attributes struct.
func (r *IncludedResource) As(target interface{}) error {
	if len(r.Attributes) == 0 {
		return nil
	}

	return json.Unmarshal(r.Attributes, target)
}

// Included is the envelope's side-loaded resource set. Resolution against it
// is free; it never triggers a request.
type Included []IncludedResource

// Find returns the included resource matching the identifier.
func (inc Included) Find(ref ResourceIdentifier) (*IncludedResource, bool) {
	for i := range inc {
		if inc[i].ID == ref.ID && inc[i].Type == ref.Type {
			return &inc[i], true
		}
	}

	return nil, false
}

// ResolveOne resolves a to-one relationship against the included set. It
// returns false when the relationship carries no data or its target was not
// side-loaded; callers then follow RelatedURL with an explicit request.
func (inc Included) ResolveOne(rel Relationship) (*IncludedResource, bool) {
	if rel.Data == nil {
		return nil, false
	}

	return inc.Find(*rel.Data)
}

// ResolveMany resolves a to-many relationship against the included set.
// Found resources are returned in reference order; the complete flag is
// false when any referenced resource is missing from the set.
func (inc Included) ResolveMany(rel ToManyRelationship) ([]IncludedResource, bool) {
	if len(rel.Data) == 0 {
		return nil, false
	}

	resolved := make([]IncludedResource, 0, len(rel.Data))
	complete := true

	for _, ref := range rel.Data {
		res, ok := inc.Find(ref)
		if !ok {
			complete = false

			continue
		}

		resolved = append(resolved, *res)
	}

	return resolved, complete
}
