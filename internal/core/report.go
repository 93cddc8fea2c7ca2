package core

import (
	"fmt"
	"strings"
)

// Conclusion is the terminal status of a check run.
type Conclusion string

const (
	ConclusionSuccess   Conclusion = "success"
	ConclusionFailure   Conclusion = "failure"
	ConclusionNeutral   Conclusion = "neutral"
	ConclusionCancelled Conclusion = "cancelled"
	ConclusionSkipped   Conclusion = "skipped"
	ConclusionTimedOut  Conclusion = "timed_out"
)

// Conclusions lists every value accepted by the check-runs API.
var Conclusions = []Conclusion{
	ConclusionSuccess,
	ConclusionFailure,
	ConclusionNeutral,
	ConclusionCancelled,
	ConclusionSkipped,
	ConclusionTimedOut,
}

// ParseConclusion validates a conclusion name. Names match exactly, so
// "SUCCESS" is rejected like any other unknown value.
func ParseConclusion(s string) (Conclusion, error) {
	c := Conclusion(s)
	for _, known := range Conclusions {
		if c == known {
			return c, nil
		}
	}
	names := make([]string, len(Conclusions))
	for i, known := range Conclusions {
		names[i] = string(known)
	}
	return "", fmt.Errorf("invalid conclusion %q, must be one of: %s", s, strings.Join(names, ", "))
}

// CheckReport is the artifact every command produces. It maps one-to-one to
// a completed check run.
type CheckReport struct {
	Title      string
	Summary    string
	Text       string
	Conclusion Conclusion
}

// DeliveryResult describes what happened when a report was relayed to the
// hosting platform. Delivery is best effort and never fails the caller.
type DeliveryResult struct {
	Delivered  bool
	StatusCode int
	Detail     string
}

// FormatVerdict is the outcome of a single format check. Warning carries
// style guidance that does not affect validity.
type FormatVerdict struct {
	TitleValid bool
	BodyValid  bool
	Message    string
	Warning    string
}
