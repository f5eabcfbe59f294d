package providers

// ISecurityProvider defines HTTP API users store.
type ISecurityProvider interface {
	Enabled() bool
	Authorize(headers map[string][]string) (string, error)
}
