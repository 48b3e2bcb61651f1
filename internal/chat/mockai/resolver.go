// Package mockai is the canned assistant used when no live AI backend is
// configured. It is a pure keyword lookup: the rule table is domain data,
// not behavior, and can be swapped freely as long as first-match-wins and
// the generic fallback hold.
package mockai

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Rule maps a keyword set to a canned response. The first rule with any
// keyword contained in the lower-cased input wins.
type Rule struct {
	Keywords []string
	Response string
}

// Fallback is returned when no rule matches.
const Fallback = "I can help you with information about NEMSU departments, courses, scholarships, campus locations, and enrollment. What specific information are you looking for?"

// DefaultRules is the campus knowledge table, in match-priority order.
var DefaultRules = []Rule{
	{
		Keywords: []string{"engineering", "college"},
		Response: "The College of Engineering is located in the East Wing, Building C. It offers programs in Civil, Mechanical, Electrical, and Electronics Engineering. Would you like to know more about specific programs?",
	},
	{
		Keywords: []string{"scholarship", "financial"},
		Response: "NEMSU offers several scholarship programs including Academic Excellence, Sports Scholarship, and CHED Tulong Dunong. You can view detailed requirements in the Scholarships section. Would you like me to guide you there?",
	},
	{
		Keywords: []string{"course", "program"},
		Response: "NEMSU offers various undergraduate and graduate programs across different colleges. Popular programs include BS Computer Science, BS Civil Engineering, and BS Education. You can explore all courses in the Courses section.",
	},
	{
		Keywords: []string{"map", "location", "where"},
		Response: "I can help you find locations on campus! The interactive Campus Map shows all major buildings including the Library, Student Center, and various college buildings. Would you like me to show you the map?",
	},
	{
		Keywords: []string{"enroll", "admission"},
		Response: "For enrollment inquiries, you need to submit: High School Report Card (Form 138), Certificate of Good Moral Character, PSA Birth Certificate, and NCAE Result. The Registrar's Office is open Monday-Friday, 8AM-5PM.",
	},
	{
		Keywords: []string{"library", "book"},
		Response: "The NEMSU Library is open Monday-Saturday, 8AM-8PM. It offers study areas, computer labs, and a vast collection of books and digital resources. You can find it on the Campus Map.",
	},
	{
		Keywords: []string{"hello", "hi", "hey"},
		Response: "Hello! I'm GabAi, your NEMSU AI Assistant. I can help you with information about courses, scholarships, campus locations, and more. What would you like to know?",
	},
	{
		Keywords: []string{"thank"},
		Response: "You're welcome! Feel free to ask if you have any other questions about NEMSU. I'm here to help!",
	},
}

// Config names the artificial latency window. The delay exists so the UI
// can show a typing indicator; tests set both bounds to zero.
type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig matches the original 1.0-2.0 s randomized pause.
func DefaultConfig() Config {
	return Config{MinDelay: time.Second, MaxDelay: 2 * time.Second}
}

// Resolver answers user messages from a fixed rule table.
type Resolver struct {
	rules []Rule
	cfg   Config
}

// NewResolver creates a resolver. Nil rules fall back to DefaultRules.
func NewResolver(rules []Rule, cfg Config) *Resolver {
	if rules == nil {
		rules = DefaultRules
	}
	return &Resolver{rules: rules, cfg: cfg}
}

// Match performs the synchronous lookup with no delay.
func (r *Resolver) Match(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Response
			}
		}
	}
	return Fallback
}

// Resolve matches the input after the configured randomized delay,
// returning early if the context is cancelled.
func (r *Resolver) Resolve(ctx context.Context, text string) (string, error) {
	if delay := r.delay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return r.Match(text), nil
}

func (r *Resolver) delay() time.Duration {
	if r.cfg.MaxDelay <= r.cfg.MinDelay {
		return r.cfg.MinDelay
	}
	return r.cfg.MinDelay + time.Duration(rand.Int63n(int64(r.cfg.MaxDelay-r.cfg.MinDelay)))
}
