package client

import "github.com/keyline-io/keyline-go/pkg/keyline"

// resourceDocument is the request envelope for create and update calls.
// Typed request structs carry attributes only; relationship references are
// attached here so callers never hand-build wire documents.
type resourceDocument struct {
	Data resourceData `json:"data"`
}

type resourceData struct {
	Type          string                          `json:"type"`
	ID            string                          `json:"id,omitempty"`
	Attributes    interface{}                     `json:"attributes,omitempty"`
	Relationships map[string]keyline.Relationship `json:"relationships,omitempty"`
}

// newDocument wraps typed attributes in a request envelope for the kind.
func newDocument(kind string, attributes interface{}) *resourceDocument {
	return &resourceDocument{Data: resourceData{Type: kind, Attributes: attributes}}
}

// withID sets the primary id for update documents.
func (d *resourceDocument) withID(id string) *resourceDocument {
	d.Data.ID = id

	return d
}

// relate attaches a to-one relationship reference. Empty ids are skipped so
// optional references stay off the wire.
func (d *resourceDocument) relate(name, kind, id string) *resourceDocument {
	if id == "" {
		return d
	}

	if d.Data.Relationships == nil {
		d.Data.Relationships = map[string]keyline.Relationship{}
	}

	d.Data.Relationships[name] = keyline.Relationship{
		Data: &keyline.ResourceIdentifier{Type: kind, ID: id},
	}

	return d
}

// metaDocument is the request envelope for meta-shaped action payloads such
// as password changes.
type metaDocument struct {
	Meta interface{} `json:"meta"`
}

// identifierList is the request envelope for relationship attach and detach
// calls, a bare array of {type, id} references.
type identifierList struct {
	Data []keyline.ResourceIdentifier `json:"data"`
}

func entitlementRefs(entitlementIDs []string) *identifierList {
	refs := make([]keyline.ResourceIdentifier, 0, len(entitlementIDs))
	for _, id := range entitlementIDs {
		refs = append(refs, keyline.ResourceIdentifier{Type: keyline.TypeEntitlements, ID: id})
	}

	return &identifierList{Data: refs}
}
