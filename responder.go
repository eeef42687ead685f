// Package commsig implements the engine behind a communications-assessment
// service: a keyword intent classifier, trait fragment tables and a
// deterministic response composer, together with the survey scoring,
// storage contracts and payment seam the service around them uses.
package commsig

import "log"

// ──────────────────────────────────────────────
// Responder — classify, compose, reply
// ──────────────────────────────────────────────

// Context tags attached to every reply.
const (
	ContextAssessmentAvailable = "assessment_available"
	ContextNoAssessment        = "no_assessment"
)

// Reply is the engine's complete output for one message.
type Reply struct {
	Response string `json:"response"`
	Context  string `json:"context"`
}

// ResponderConfig tunes a Responder.
type ResponderConfig struct {
	// LogCategories emits one log line per classified message.
	LogCategories bool
}

// DefaultResponderConfig returns the default configuration.
func DefaultResponderConfig() ResponderConfig {
	return ResponderConfig{}
}

// Responder is the dialogue entry point. Apart from observational counters
// it is stateless: each call is fully determined by its inputs, and any
// number of goroutines may call Respond concurrently.
type Responder struct {
	config ResponderConfig
	stats  *EngineStats
}

// NewResponder creates a Responder. Config is optional.
func NewResponder(config ...ResponderConfig) *Responder {
	cfg := DefaultResponderConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Responder{
		config: cfg,
		stats:  NewEngineStats(),
	}
}

// Stats returns a snapshot of the responder's counters.
func (r *Responder) Stats() StatsSnapshot {
	return r.stats.Snapshot()
}

// Respond classifies the message, composes the matching response and
// returns it with the context tag. It never panics: composition failures
// from malformed profiles degrade to the fallback text, and the context
// tag depends on profile presence alone, never on the category.
func (r *Responder) Respond(message string, profile *TraitProfile) (reply Reply) {
	hasProfile := profile != nil

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Responder] compose panic recovered: %v", rec)
			reply = Reply{
				Response: composeFallback(nil),
				Context:  contextTag(hasProfile),
			}
		}
	}()

	category := Classify(message, hasProfile)
	r.stats.record(category, hasProfile)
	if r.config.LogCategories {
		log.Printf("[Responder] category=%s profile=%t", category, hasProfile)
	}

	return Reply{
		Response: Compose(category, profile),
		Context:  contextTag(hasProfile),
	}
}

func contextTag(hasProfile bool) string {
	if hasProfile {
		return ContextAssessmentAvailable
	}
	return ContextNoAssessment
}
