package domain

import "strings"

// ResourceID is a closed set of identifier variants. Resolution dispatches
// on the concrete type, so adding a namespace means touching the resolver.
type ResourceID interface {
	URI() string
	isResourceID()
}

// FileResource identifies a text file under a mounted folder by absolute path.
type FileResource struct {
	Path string
}

func (r FileResource) URI() string   { return "file://" + r.Path }
func (r FileResource) isResourceID() {}

// PageResource identifies a cached web page by its mount URL.
type PageResource struct {
	URL string
}

func (r PageResource) URI() string   { return r.URL }
func (r PageResource) isResourceID() {}

// SchemaResource identifies the generated schema of a mounted database.
type SchemaResource struct {
	Path string
}

func (r SchemaResource) URI() string   { return "db://" + r.Path }
func (r SchemaResource) isResourceID() {}

// ParseResourceID maps an opaque identifier onto its namespace. Identifiers
// without a recognized scheme are treated as page URLs; the resolver retries
// those with an https:// prefix before giving up.
func ParseResourceID(uri string) ResourceID {
	switch {
	case strings.HasPrefix(uri, "file://"):
		return FileResource{Path: strings.TrimPrefix(uri, "file://")}
	case strings.HasPrefix(uri, "db://"):
		return SchemaResource{Path: strings.TrimPrefix(uri, "db://")}
	default:
		return PageResource{URL: uri}
	}
}

// ResourceDescriptor announces one readable unit to the protocol layer.
type ResourceDescriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// ResourceContent is the payload of a successful resolution.
type ResourceContent struct {
	URI      string
	MIMEType string
	Text     string
}

// ContentTypeFor returns the best-guess content type for an exposed file.
func ContentTypeFor(name string) string {
	if strings.HasSuffix(name, ".md") {
		return "text/markdown"
	}
	return "text/plain"
}

// Exposable reports whether a file name is ever enumerated or exposed.
// Only plain-text formats are served.
func Exposable(name string) bool {
	return strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".md")
}
