package wifi

// Capabilities reports which registration paths a backend can serve.
// Callers check these before handing suggestions over.
type Capabilities struct {
	// BulkRegistration means AddSuggestions is available.
	BulkRegistration bool
	// Proposals means ProposeSuggestions is available.
	Proposals bool
}

// Registrar registers a set of suggestions in a single call.
type Registrar interface {
	// AddSuggestions registers all suggestions or none of them. A non-nil error
	// means nothing from this call should be considered registered.
	AddSuggestions(suggestions []Suggestion) error
}

// Proposer hands small batches of suggestions to the platform so the user can
// review and join them. There is no status: failures are logged by the backend.
type Proposer interface {
	ProposeSuggestions(suggestions []Suggestion)
}

// Backend defines the interface for registering networks with the OS.
type Backend interface {
	Registrar
	Proposer

	// Name is a short identifier for the backend, like "networkmanager".
	Name() string
	// Capabilities reports which registration paths are usable right now.
	Capabilities() Capabilities
}
