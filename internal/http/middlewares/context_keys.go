package middlewares

const (
	CtxRequestID = "request_id"
	CtxIdentity  = "auth.identity"
	CtxBoard     = "resource.board"
)
