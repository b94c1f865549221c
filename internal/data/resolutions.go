package data

import "github.com/hafizmfadli/go-video/internal/validator"

// Resolution is one tag from the closed set of playback qualities a video
// can be published in.
type Resolution string

const (
	P144  Resolution = "P144"
	P240  Resolution = "P240"
	P360  Resolution = "P360"
	P480  Resolution = "P480"
	P720  Resolution = "P720"
	P1080 Resolution = "P1080"
	P1440 Resolution = "P1440"
	P2160 Resolution = "P2160"
)

// Resolutions returns every member of the enumeration, lowest first.
func Resolutions() []Resolution {
	return []Resolution{P144, P240, P360, P480, P720, P1080, P1440, P2160}
}

// ParseResolution returns the Resolution named by s, and false if s is not
// a member of the enumeration. Matching is case sensitive.
func ParseResolution(s string) (Resolution, bool) {
	r := Resolution(s)
	if !validator.In(r, Resolutions()...) {
		return "", false
	}
	return r, true
}
