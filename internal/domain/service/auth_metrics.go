package service

// AuthMetrics records authentication outcomes. Implementations must be safe
// for concurrent use.
type AuthMetrics interface {
	RecordSignup(outcome string)
	RecordSignin(outcome string)
	RecordTokenRejected()
}

// Outcome labels shared by the auth flows.
const (
	OutcomeSuccess = "success"
	OutcomeTaken   = "taken"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)
