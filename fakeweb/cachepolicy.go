package fakeweb

import (
	"errors"
	"time"

	"github.com/launchdarkly/fake-http-context/collection"
)

// Cacheability mirrors the values of the HTTP Cache-Control visibility directives.
type Cacheability int

const (
	NoCache Cacheability = iota + 1
	Private
	Server
	ServerAndNoCache
	Public
	ServerAndPrivate
)

// Revalidation selects the revalidation directive of a cached response.
type Revalidation int

const (
	AllCaches Revalidation = iota + 1
	ProxyCaches
	NoRevalidation
)

// ValidationCallback is called by a cache to decide whether a cached response is still valid.
type ValidationCallback func(ctx HTTPContext, data any) bool

type validationEntry struct {
	callback ValidationCallback
	data     any
}

var (
	ErrETagAlreadySet  = errors.New("ETag is already set")
	ErrETagFromFiles   = errors.New("cannot set ETag and also generate it from files")
	ErrVaryByCustomSet = errors.New("VaryByCustom is already set")
)

const negativeCacheDelta = "cache age cannot be negative"

// CachePolicy records the caching directives set on a response so that tests can inspect them.
// Properties that were never set report ok == false.
type CachePolicy struct {
	allowInHistory    *bool
	cacheability      *Cacheability
	cacheExtensions   []string
	etag              string
	expires           *time.Time
	etagFromFiles     bool
	lastModFromFiles  bool
	lastModified      *time.Time
	maxAge            *time.Duration
	noServerCaching   bool
	noStore           bool
	noTransforms      bool
	omitVaryStar      *bool
	proxyMaxAge       *time.Duration
	revalidation      *Revalidation
	slidingExpiration *bool
	validUntilExpires *bool
	varyByCustom      string
	callbacks         []validationEntry

	varyByHeaders          *collection.Collection[bool]
	varyByParams           *collection.Collection[bool]
	varyByContentEncodings *collection.Collection[bool]
}

func NewCachePolicy() *CachePolicy {
	return &CachePolicy{
		varyByHeaders:          collection.New[bool](collection.IgnoreCase),
		varyByParams:           collection.New[bool](collection.IgnoreCase),
		varyByContentEncodings: collection.New[bool](collection.IgnoreCase),
	}
}

func (p *CachePolicy) AddValidationCallback(callback ValidationCallback, data any) error {
	if callback == nil {
		return nilArgument("handler")
	}
	p.callbacks = append(p.callbacks, validationEntry{callback: callback, data: data})
	return nil
}

// Validate runs the validation callbacks in order and reports whether all of them accepted
// the cached response.
func (p *CachePolicy) Validate(ctx HTTPContext) bool {
	for _, e := range p.callbacks {
		if !e.callback(ctx, e.data) {
			return false
		}
	}
	return true
}

func (p *CachePolicy) ValidationCallbackCount() int { return len(p.callbacks) }

func (p *CachePolicy) AppendCacheExtension(extension string) error {
	if extension == "" {
		return nilArgument("extension")
	}
	p.cacheExtensions = append(p.cacheExtensions, extension)
	return nil
}

func (p *CachePolicy) CacheExtensions() []string { return p.cacheExtensions }

func (p *CachePolicy) SetAllowResponseInBrowserHistory(allow bool) { p.allowInHistory = &allow }

func (p *CachePolicy) AllowResponseInBrowserHistory() (bool, bool) { return derefOK(p.allowInHistory) }

func (p *CachePolicy) SetCacheability(c Cacheability) { p.cacheability = &c }

// SetCacheabilityField sets the cacheability and records field as a cache extension.
func (p *CachePolicy) SetCacheabilityField(c Cacheability, field string) error {
	if field == "" {
		return nilArgument("field")
	}
	p.cacheability = &c
	p.cacheExtensions = append(p.cacheExtensions, field)
	return nil
}

func (p *CachePolicy) Cacheability() (Cacheability, bool) { return derefOK(p.cacheability) }

// SetETag fails if an ETag was already set or ETags are generated from file dependencies.
func (p *CachePolicy) SetETag(etag string) error {
	if etag == "" {
		return nilArgument("etag")
	}
	if p.etag != "" {
		return ErrETagAlreadySet
	}
	if p.etagFromFiles {
		return ErrETagFromFiles
	}
	p.etag = etag
	return nil
}

func (p *CachePolicy) ETag() string { return p.etag }

func (p *CachePolicy) SetETagFromFileDependencies() error {
	if p.etag != "" {
		return ErrETagFromFiles
	}
	p.etagFromFiles = true
	return nil
}

func (p *CachePolicy) GenerateETagFromFiles() bool { return p.etagFromFiles }

func (p *CachePolicy) SetExpires(t time.Time)          { p.expires = &t }
func (p *CachePolicy) Expires() (time.Time, bool)      { return derefOK(p.expires) }
func (p *CachePolicy) SetLastModified(t time.Time)     { p.lastModified = &t }
func (p *CachePolicy) LastModified() (time.Time, bool) { return derefOK(p.lastModified) }

func (p *CachePolicy) SetLastModifiedFromFileDependencies() { p.lastModFromFiles = true }
func (p *CachePolicy) GenerateLastModifiedFromFiles() bool  { return p.lastModFromFiles }

func (p *CachePolicy) SetMaxAge(delta time.Duration) error {
	if delta < 0 {
		return &ArgumentError{Param: "delta", Message: negativeCacheDelta}
	}
	p.maxAge = &delta
	return nil
}

func (p *CachePolicy) MaxAge() (time.Duration, bool) { return derefOK(p.maxAge) }

func (p *CachePolicy) SetProxyMaxAge(delta time.Duration) error {
	if delta < 0 {
		return &ArgumentError{Param: "delta", Message: negativeCacheDelta}
	}
	p.proxyMaxAge = &delta
	return nil
}

func (p *CachePolicy) ProxyMaxAge() (time.Duration, bool) { return derefOK(p.proxyMaxAge) }

func (p *CachePolicy) SetNoServerCaching()   { p.noServerCaching = true }
func (p *CachePolicy) NoServerCaching() bool { return p.noServerCaching }
func (p *CachePolicy) SetNoStore()           { p.noStore = true }
func (p *CachePolicy) NoStore() bool         { return p.noStore }
func (p *CachePolicy) SetNoTransforms()      { p.noTransforms = true }
func (p *CachePolicy) NoTransforms() bool    { return p.noTransforms }

func (p *CachePolicy) SetOmitVaryStar(omit bool)          { p.omitVaryStar = &omit }
func (p *CachePolicy) OmitVaryStar() (bool, bool)         { return derefOK(p.omitVaryStar) }
func (p *CachePolicy) SetRevalidation(r Revalidation)     { p.revalidation = &r }
func (p *CachePolicy) Revalidation() (Revalidation, bool) { return derefOK(p.revalidation) }
func (p *CachePolicy) SetSlidingExpiration(slide bool)    { p.slidingExpiration = &slide }
func (p *CachePolicy) SlidingExpiration() (bool, bool)    { return derefOK(p.slidingExpiration) }
func (p *CachePolicy) SetValidUntilExpires(valid bool)    { p.validUntilExpires = &valid }
func (p *CachePolicy) ValidUntilExpires() (bool, bool)    { return derefOK(p.validUntilExpires) }

// SetVaryByCustom can only be called once.
func (p *CachePolicy) SetVaryByCustom(custom string) error {
	if custom == "" {
		return nilArgument("custom")
	}
	if p.varyByCustom != "" {
		return ErrVaryByCustomSet
	}
	p.varyByCustom = custom
	return nil
}

func (p *CachePolicy) VaryByCustom() string { return p.varyByCustom }

// VaryByHeaders maps header names to whether the cached response varies by them.
func (p *CachePolicy) VaryByHeaders() *collection.Collection[bool] { return p.varyByHeaders }

// VaryByParams maps parameter names to whether the cached response varies by them.
func (p *CachePolicy) VaryByParams() *collection.Collection[bool] { return p.varyByParams }

// VaryByContentEncodings maps content encodings to whether the cached response varies by them.
func (p *CachePolicy) VaryByContentEncodings() *collection.Collection[bool] {
	return p.varyByContentEncodings
}

func derefOK[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
