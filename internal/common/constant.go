package common

// TokenHeaderName is the HTTP header that carries the opaque session token
// on authenticated requests.
const TokenHeaderName = "X-Token"

// SessionKeyPrefix namespaces session tokens inside the session store.
// A token t is stored under "auth_<t>".
const SessionKeyPrefix = "auth_"
