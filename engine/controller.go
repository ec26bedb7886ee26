package engine

import "time"

// ProvidedType pairs a media type the controller can render with the
// function that renders it, the entries of content_types_provided.
type ProvidedType struct {
	MediaType string
	Render    func(ctx *Context) (Body, error)
}

// AcceptedType pairs a media type the controller can consume (PUT/POST
// bodies) with the function that accepts it, the entries of
// content_types_accepted.
type AcceptedType struct {
	MediaType string
	Accept    func(ctx *Context) (bool, error)
}

// PostOutcome is process_post's result: either a plain completion, a
// `{halt, Code}` short-circuit, or a redirect, per spec.md §4.2's POST
// semantics.
type PostOutcome struct {
	Handled     bool
	Halt        bool
	HaltStatus  int
	Redirect    bool
	RedirectURI string
}

// Controller answers the 37 questions the decision engine asks about one
// resource. Every method has the §6 default table's behavior via
// BaseController; a concrete controller embeds BaseController and
// overrides only the methods whose default doesn't fit, avoiding the
// source's reflective "does the controller implement this name" lookup.
type Controller interface {
	ServiceAvailable(ctx *Context) bool
	KnownMethods(ctx *Context) []string
	URITooLong(ctx *Context) bool
	AllowedMethods(ctx *Context) []string
	MalformedRequest(ctx *Context) bool
	IsAuthorized(ctx *Context) (ok bool, challenge string)
	Forbidden(ctx *Context) bool
	ValidContentHeaders(ctx *Context) bool
	KnownContentType(ctx *Context) bool
	ValidEntityLength(ctx *Context) bool
	Options(ctx *Context) Headers

	ContentTypesProvided(ctx *Context) []ProvidedType
	LanguageAvailable(ctx *Context, language string) bool
	CharsetsProvided(ctx *Context) []string // charset names, or [NoCharset] to skip negotiation
	ContentEncodingsProvided(ctx *Context) []string
	Variances(ctx *Context) []string
	TransferEncodingsProvided(ctx *Context) []string

	ResourceExists(ctx *Context) bool
	GenerateETag(ctx *Context) (etag string, ok bool)
	LastModified(ctx *Context) (t time.Time, ok bool)
	Expires(ctx *Context) (t time.Time, ok bool)
	RangeOK(ctx *Context) bool

	MovedPermanently(ctx *Context) (location string, ok bool)
	MovedTemporarily(ctx *Context) (location string, ok bool)
	PreviouslyExisted(ctx *Context) bool

	AllowMissingPost(ctx *Context) bool
	IsConflict(ctx *Context) bool
	ContentTypesAccepted(ctx *Context) []AcceptedType
	MultipleChoices(ctx *Context) bool
	CreatePath(ctx *Context) (path string, ok bool)
	BaseURI(ctx *Context) (uri string, ok bool)

	PostIsCreate(ctx *Context) bool
	ProcessPost(ctx *Context) (PostOutcome, error)
	DeleteResource(ctx *Context) (bool, error)
	DeleteCompleted(ctx *Context) bool

	UpgradesProvided(ctx *Context) []string
	FinishRequest(ctx *Context) bool
}

// BaseController implements every Controller method with the §6 default
// table. Embed it and override only what your resource needs.
type BaseController struct{}

func (BaseController) ServiceAvailable(*Context) bool { return true }
func (BaseController) KnownMethods(*Context) []string {
	return []string{"GET", "HEAD", "POST", "PUT", "DELETE", "TRACE", "CONNECT", "OPTIONS"}
}
func (BaseController) URITooLong(*Context) bool          { return false }
func (BaseController) AllowedMethods(*Context) []string  { return []string{"GET", "HEAD"} }
func (BaseController) MalformedRequest(*Context) bool    { return false }
func (BaseController) IsAuthorized(*Context) (bool, string) { return true, "" }
func (BaseController) Forbidden(*Context) bool           { return false }
func (BaseController) ValidContentHeaders(*Context) bool { return true }
func (BaseController) KnownContentType(*Context) bool    { return true }
func (BaseController) ValidEntityLength(*Context) bool   { return true }
func (BaseController) Options(*Context) Headers          { return make(Headers) }

func (BaseController) ContentTypesProvided(ctx *Context) []ProvidedType {
	return []ProvidedType{{MediaType: "text/html", Render: func(*Context) (Body, error) {
		return NewBytesBody(nil), nil
	}}}
}
func (BaseController) LanguageAvailable(*Context, string) bool { return true }
func (BaseController) CharsetsProvided(*Context) []string      { return []string{NoCharset} }
func (BaseController) ContentEncodingsProvided(*Context) []string {
	return []string{"identity"}
}
func (BaseController) Variances(*Context) []string                 { return nil }
func (BaseController) TransferEncodingsProvided(*Context) []string { return nil }

func (BaseController) ResourceExists(*Context) bool                   { return true }
func (BaseController) GenerateETag(*Context) (string, bool)           { return "", false }
func (BaseController) LastModified(*Context) (time.Time, bool)        { return time.Time{}, false }
func (BaseController) Expires(*Context) (time.Time, bool)             { return time.Time{}, false }
func (BaseController) RangeOK(*Context) bool                          { return true }
func (BaseController) MovedPermanently(*Context) (string, bool)       { return "", false }
func (BaseController) MovedTemporarily(*Context) (string, bool)       { return "", false }
func (BaseController) PreviouslyExisted(*Context) bool                { return false }

func (BaseController) AllowMissingPost(*Context) bool { return false }
func (BaseController) IsConflict(*Context) bool       { return false }
func (BaseController) ContentTypesAccepted(*Context) []AcceptedType {
	return nil
}
func (BaseController) MultipleChoices(*Context) bool        { return false }
func (BaseController) CreatePath(*Context) (string, bool)   { return "", false }
func (BaseController) BaseURI(*Context) (string, bool)      { return "", false }

func (BaseController) PostIsCreate(*Context) bool { return false }
func (BaseController) ProcessPost(*Context) (PostOutcome, error) {
	return PostOutcome{}, nil
}
func (BaseController) DeleteResource(*Context) (bool, error) { return false, nil }
func (BaseController) DeleteCompleted(*Context) bool         { return true }

func (BaseController) UpgradesProvided(*Context) []string { return nil }
func (BaseController) FinishRequest(*Context) bool         { return true }

// callRangeOK adapts the Controller's RangeOK callback for Context's
// lazy, once-only evaluation.
func callRangeOK(ctrl Controller, ctx *Context) bool { return ctrl.RangeOK(ctx) }
