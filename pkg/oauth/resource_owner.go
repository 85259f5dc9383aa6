package oauth

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Key paths into the Aircall "integrations/me" document.
const (
	aircallUserIDPath    = "integration.user.id"
	aircallUserNamePath  = "integration.user.name"
	aircallUserEmailPath = "integration.user.email"
)

// AircallResourceOwner is a read-only view over the document returned by
// Aircall's profile endpoint. Expected shape:
//
//	{"integration": {"user": {"id": ..., "name": ..., "email": ...}}}
//
// Any other shape yields absent fields, never an error.
type AircallResourceOwner struct {
	doc map[string]any
}

// NewAircallResourceOwner wraps a copy of doc. A nil doc is treated as empty.
func NewAircallResourceOwner(doc map[string]any) *AircallResourceOwner {
	return &AircallResourceOwner{doc: cloneDocument(doc)}
}

// ID returns integration.user.id as sent by the provider.
func (o *AircallResourceOwner) ID() (any, bool) {
	return LookupPath(o.doc, aircallUserIDPath)
}

// IDString renders the id as a string, or "" when it is absent.
func (o *AircallResourceOwner) IDString() string {
	v, ok := o.ID()
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		// encoding/json without UseNumber decodes integers as float64
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

// Name returns integration.user.name.
func (o *AircallResourceOwner) Name() (string, bool) {
	return lookupString(o.doc, aircallUserNamePath)
}

// Email returns integration.user.email.
func (o *AircallResourceOwner) Email() (string, bool) {
	return lookupString(o.doc, aircallUserEmailPath)
}

// UserInfo normalizes the owner. Absent fields become empty strings.
func (o *AircallResourceOwner) UserInfo() *UserInfo {
	name, _ := o.Name()
	email, _ := o.Email()
	return &UserInfo{
		ID:    o.IDString(),
		Email: email,
		Name:  name,
	}
}

// ToMap returns a copy of the raw document.
func (o *AircallResourceOwner) ToMap() map[string]any {
	return cloneDocument(o.doc)
}
