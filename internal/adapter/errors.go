package adapter

import "errors"

var (
	// ErrNetwork marks a connectivity failure talking to the provider.
	ErrNetwork = errors.New("identity provider unreachable")

	// ErrInvalidCredentials marks a provider rejection of the
	// credential/secret pair (wrong password, unknown account, malformed
	// email — deliberately indistinguishable).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLookupUnsupported means the provider build does not expose the
	// credential-existence capability.
	ErrLookupUnsupported = errors.New("credential lookup unsupported")
)
