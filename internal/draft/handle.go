package draft

import "sync"

// Kind distinguishes the two LaunchHandle payload shapes.
type Kind int

const (
	// KindURI handles carry a URI to launch.
	KindURI Kind = iota
	// KindText handles carry draft file text to write somewhere.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// LaunchHandle is the result of encoding a draft: either a URI or a
// draft text, its content type, and a release hook for whatever resource
// the embedding layer attached to it.
//
// A handle is owned by the caller that requested it. Close runs the
// release hook at most once.
type LaunchHandle struct {
	Kind        Kind
	URI         string
	Text        string
	ContentType string

	once    sync.Once
	release func() error
	err     error
}

// NewURIHandle returns a handle carrying uri with a no-op release.
func NewURIHandle(uri, contentType string) *LaunchHandle {
	return &LaunchHandle{Kind: KindURI, URI: uri, ContentType: contentType}
}

// NewTextHandle returns a handle carrying text with a no-op release.
func NewTextHandle(text, contentType string) *LaunchHandle {
	return &LaunchHandle{Kind: KindText, Text: text, ContentType: contentType}
}

// Content returns the URI or the text, depending on Kind.
func (h *LaunchHandle) Content() string {
	if h.Kind == KindURI {
		return h.URI
	}
	return h.Text
}

// WithRelease chains fn in front of the handle's current release hook
// and returns h. Both run on Close; fn runs first, like revoking an
// object URL before releasing the text it points to.
func (h *LaunchHandle) WithRelease(fn func() error) *LaunchHandle {
	if fn == nil {
		return h
	}
	prev := h.release
	h.release = func() error {
		err := fn()
		if prev != nil {
			if perr := prev(); err == nil {
				err = perr
			}
		}
		return err
	}
	return h
}

// Close releases the attached resource. Subsequent calls return the
// first call's result.
func (h *LaunchHandle) Close() error {
	h.once.Do(func() {
		if h.release != nil {
			h.err = h.release()
		}
	})
	return h.err
}
